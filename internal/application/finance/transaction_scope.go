package finance

import (
	"context"

	"github.com/goldsmith/backend/internal/domain/finance"
)

// TransactionScope provides transactional access to finance repositories.
// All repository operations inside Execute share one database transaction
// and commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to finance repositories scoped
// to the current transaction.
type TransactionalRepositories interface {
	// Accounts returns the bank account repository scoped to the transaction
	Accounts() finance.BankAccountRepository
	// Payables returns the account payable repository scoped to the transaction
	Payables() finance.AccountPayableRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	accountRepo finance.BankAccountRepository
	payableRepo finance.AccountPayableRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(accountRepo finance.BankAccountRepository, payableRepo finance.AccountPayableRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{accountRepo: accountRepo, payableRepo: payableRepo}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Accounts returns the bank account repository
func (s *NoOpTransactionScope) Accounts() finance.BankAccountRepository {
	return s.accountRepo
}

// Payables returns the account payable repository
func (s *NoOpTransactionScope) Payables() finance.AccountPayableRepository {
	return s.payableRepo
}
