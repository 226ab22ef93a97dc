package finance

import (
	"context"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountFilter defines filtering options for bank account queries
type BankAccountFilter struct {
	shared.Filter
	Active   *bool
	BankName *string
}

// BankTransactionFilter defines filtering options for ledger entry queries
type BankTransactionFilter struct {
	shared.Filter
	Type       *BankTransactionType
	Reconciled *bool
	FromDate   *time.Time
	ToDate     *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// BankAccountRepository defines the interface for bank account persistence.
// The balance cache and the journal move together: implementations must
// persist a posted transaction and the new balance atomically, guarded by
// the aggregate version.
type BankAccountRepository interface {
	// FindByID finds a bank account by ID (without transactions)
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)

	// FindByIDWithTransactions finds a bank account with its journal loaded
	FindByIDWithTransactions(ctx context.Context, id uuid.UUID) (*BankAccount, error)

	// FindByAccountNumber finds a bank account by its number
	FindByAccountNumber(ctx context.Context, accountNumber string) (*BankAccount, error)

	// FindAll finds bank accounts with filtering
	FindAll(ctx context.Context, filter BankAccountFilter) ([]BankAccount, error)

	// FindTransactions lists ledger entries for an account
	FindTransactions(ctx context.Context, accountID uuid.UUID, filter BankTransactionFilter) ([]BankTransaction, error)

	// Save creates or updates a bank account
	Save(ctx context.Context, account *BankAccount) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, account *BankAccount) error

	// SaveWithTransaction persists the account's new balance and appends the
	// given ledger entry in one database transaction, guarded by the version
	SaveWithTransaction(ctx context.Context, account *BankAccount, tx *BankTransaction) error

	// MarkReconciled flips the reconciled flag on the given entries
	MarkReconciled(ctx context.Context, accountID uuid.UUID, txIDs []uuid.UUID, date time.Time) error

	// CountTransactions counts ledger entries for an account
	CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error)

	// SumTransactionAmounts returns the signed sum of the journal for an account
	SumTransactionAmounts(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// Delete soft deletes a bank account
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts bank accounts with optional filters
	Count(ctx context.Context, filter BankAccountFilter) (int64, error)
}

// AccountPayableFilter defines filtering options for payable queries
type AccountPayableFilter struct {
	shared.Filter
	SupplierID *uuid.UUID
	Status     *SettlementStatus
	SourceType *PayableSourceType
	SourceID   *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	DueFrom    *time.Time
	DueTo      *time.Time
	Overdue    *bool
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// AccountPayableRepository defines the interface for account payable persistence
type AccountPayableRepository interface {
	// FindByID finds an account payable by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AccountPayable, error)

	// FindByPayableNumber finds by payable number
	FindByPayableNumber(ctx context.Context, payableNumber string) (*AccountPayable, error)

	// FindBySource finds by source document (e.g. a purchase)
	FindBySource(ctx context.Context, sourceType PayableSourceType, sourceID uuid.UUID) (*AccountPayable, error)

	// FindAll finds account payables with filtering
	FindAll(ctx context.Context, filter AccountPayableFilter) ([]AccountPayable, error)

	// GeneratePayableNumber generates the next sequential payable number
	GeneratePayableNumber(ctx context.Context) (string, error)

	// FindOutstanding finds all unsettled payables for a supplier
	FindOutstanding(ctx context.Context, supplierID uuid.UUID) ([]AccountPayable, error)

	// FindOverdue finds all overdue payables
	FindOverdue(ctx context.Context, filter AccountPayableFilter) ([]AccountPayable, error)

	// Save creates or updates an account payable
	Save(ctx context.Context, payable *AccountPayable) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, payable *AccountPayable) error

	// Delete soft deletes an account payable
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts account payables with optional filters
	Count(ctx context.Context, filter AccountPayableFilter) (int64, error)

	// SumOutstanding returns the total outstanding amount, optionally per supplier
	SumOutstanding(ctx context.Context, supplierID *uuid.UUID) (decimal.Decimal, error)
}
