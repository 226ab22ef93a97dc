package finance

import (
	"context"
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBankAccountRepository is a mock implementation of finance.BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByIDWithTransactions(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*finance.BankAccount, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAll(ctx context.Context, filter finance.BankAccountFilter) ([]finance.BankAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindTransactions(ctx context.Context, accountID uuid.UUID, filter finance.BankTransactionFilter) ([]finance.BankTransaction, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BankTransaction), args.Error(1)
}

func (m *MockBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) SaveWithLock(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) SaveWithTransaction(ctx context.Context, account *finance.BankAccount, tx *finance.BankTransaction) error {
	args := m.Called(ctx, account, tx)
	return args.Error(0)
}

func (m *MockBankAccountRepository) MarkReconciled(ctx context.Context, accountID uuid.UUID, txIDs []uuid.UUID, date time.Time) error {
	args := m.Called(ctx, accountID, txIDs, date)
	return args.Error(0)
}

func (m *MockBankAccountRepository) CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankAccountRepository) SumTransactionAmounts(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Count(ctx context.Context, filter finance.BankAccountFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountPayableRepository is a mock implementation of finance.AccountPayableRepository
type MockAccountPayableRepository struct {
	mock.Mock
}

func (m *MockAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindByPayableNumber(ctx context.Context, payableNumber string) (*finance.AccountPayable, error) {
	args := m.Called(ctx, payableNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindBySource(ctx context.Context, sourceType finance.PayableSourceType, sourceID uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindAll(ctx context.Context, filter finance.AccountPayableFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) GeneratePayableNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAccountPayableRepository) FindOutstanding(ctx context.Context, supplierID uuid.UUID) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindOverdue(ctx context.Context, filter finance.AccountPayableFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) SaveWithLock(ctx context.Context, payable *finance.AccountPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Count(ctx context.Context, filter finance.AccountPayableFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountPayableRepository) SumOutstanding(ctx context.Context, supplierID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
