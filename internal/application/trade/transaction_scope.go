package trade

import (
	"context"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/inventory"
	"github.com/goldsmith/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// fulfillment workflows touch. Receiving and return completion cross three
// aggregates (document, stock, money), so everything inside Execute commits
// or rolls back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	// Purchases returns the purchase repository scoped to the transaction
	Purchases() trade.PurchaseRepository
	// Returns returns the return repository scoped to the transaction
	Returns() trade.ReturnRepository
	// Sales returns the sale repository scoped to the transaction
	Sales() trade.SaleRepository
	// Stock returns the stock repository scoped to the transaction
	Stock() inventory.StockRepository
	// Payables returns the account payable repository scoped to the transaction
	Payables() finance.AccountPayableRepository
	// Accounts returns the bank account repository scoped to the transaction
	Accounts() finance.BankAccountRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	purchaseRepo trade.PurchaseRepository
	returnRepo   trade.ReturnRepository
	saleRepo     trade.SaleRepository
	stockRepo    inventory.StockRepository
	payableRepo  finance.AccountPayableRepository
	accountRepo  finance.BankAccountRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	purchaseRepo trade.PurchaseRepository,
	returnRepo trade.ReturnRepository,
	saleRepo trade.SaleRepository,
	stockRepo inventory.StockRepository,
	payableRepo finance.AccountPayableRepository,
	accountRepo finance.BankAccountRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseRepo: purchaseRepo,
		returnRepo:   returnRepo,
		saleRepo:     saleRepo,
		stockRepo:    stockRepo,
		payableRepo:  payableRepo,
		accountRepo:  accountRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Purchases returns the purchase repository
func (s *NoOpTransactionScope) Purchases() trade.PurchaseRepository { return s.purchaseRepo }

// Returns returns the return repository
func (s *NoOpTransactionScope) Returns() trade.ReturnRepository { return s.returnRepo }

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() trade.SaleRepository { return s.saleRepo }

// Stock returns the stock repository
func (s *NoOpTransactionScope) Stock() inventory.StockRepository { return s.stockRepo }

// Payables returns the account payable repository
func (s *NoOpTransactionScope) Payables() finance.AccountPayableRepository { return s.payableRepo }

// Accounts returns the bank account repository
func (s *NoOpTransactionScope) Accounts() finance.BankAccountRepository { return s.accountRepo }
