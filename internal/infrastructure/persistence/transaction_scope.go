package persistence

import (
	"context"

	appfinance "github.com/goldsmith/backend/internal/application/finance"
	apptrade "github.com/goldsmith/backend/internal/application/trade"
	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/inventory"
	"github.com/goldsmith/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormFinanceTransactionScope implements the finance TransactionScope
// using a GORM database transaction.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the function within a database transaction. Repositories
// handed to fn are bound to the transaction connection, so every operation
// inside commits or rolls back as one unit.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&financeTxRepositories{tx: tx})
	})
}

// financeTxRepositories provides finance repositories bound to a transaction
type financeTxRepositories struct {
	tx *gorm.DB
}

func (r *financeTxRepositories) Accounts() finance.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

func (r *financeTxRepositories) Payables() finance.AccountPayableRepository {
	return NewGormAccountPayableRepository(r.tx)
}

// GormTradeTransactionScope implements the trade TransactionScope using a
// GORM database transaction. Receiving and return completion touch stock,
// documents and money together, so all repositories share one transaction.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the function within a database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tradeTxRepositories{tx: tx})
	})
}

// tradeTxRepositories provides trade repositories bound to a transaction
type tradeTxRepositories struct {
	tx *gorm.DB
}

func (r *tradeTxRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *tradeTxRepositories) Returns() trade.ReturnRepository {
	return NewGormReturnRepository(r.tx)
}

func (r *tradeTxRepositories) Sales() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *tradeTxRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

func (r *tradeTxRepositories) Payables() finance.AccountPayableRepository {
	return NewGormAccountPayableRepository(r.tx)
}

func (r *tradeTxRepositories) Accounts() finance.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

// Ensure the scopes implement the application interfaces
var (
	_ appfinance.TransactionScope = (*GormFinanceTransactionScope)(nil)
	_ apptrade.TransactionScope   = (*GormTradeTransactionScope)(nil)
)
