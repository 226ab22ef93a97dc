package finance

import (
	"testing"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankAccount(t *testing.T) {
	tests := []struct {
		name           string
		accountNumber  string
		accountName    string
		openingBalance decimal.Decimal
		wantErr        bool
		errCode        string
	}{
		{
			name:           "valid account with opening balance",
			accountNumber:  "BCA-001",
			accountName:    "Operating Account",
			openingBalance: decimal.NewFromInt(1000000),
			wantErr:        false,
		},
		{
			name:           "valid account with zero opening balance",
			accountNumber:  "BCA-002",
			accountName:    "Petty Cash",
			openingBalance: decimal.Zero,
			wantErr:        false,
		},
		{
			name:          "empty account number",
			accountNumber: "",
			accountName:   "Operating Account",
			wantErr:       true,
			errCode:       "INVALID_ACCOUNT_NUMBER",
		},
		{
			name:          "empty account name",
			accountNumber: "BCA-003",
			accountName:   "",
			wantErr:       true,
			errCode:       "INVALID_ACCOUNT_NAME",
		},
		{
			name:           "negative opening balance",
			accountNumber:  "BCA-004",
			accountName:    "Operating Account",
			openingBalance: decimal.NewFromInt(-1),
			wantErr:        true,
			errCode:       "INVALID_AMOUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := NewBankAccount(tt.accountNumber, tt.accountName, "BCA", valueobject.IDR, valueobject.NewMoneyIDR(tt.openingBalance))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, shared.IsDomainErrorCode(err, tt.errCode))
				assert.Nil(t, account)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, account)
			assert.True(t, account.Active)
			assert.True(t, tt.openingBalance.Equal(account.Balance))
			assert.Equal(t, 1, account.Version)

			if tt.openingBalance.IsPositive() {
				require.Len(t, account.Transactions, 1)
				opening := account.Transactions[0]
				assert.Equal(t, BankTransactionTypeDeposit, opening.Type)
				assert.True(t, opening.Reconciled)
				assert.True(t, tt.openingBalance.Equal(opening.BalanceAfter))
			} else {
				assert.Empty(t, account.Transactions)
			}
		})
	}
}

func TestBankAccount_Post(t *testing.T) {
	newAccount := func(t *testing.T, opening int64) *BankAccount {
		t.Helper()
		account, err := NewBankAccount("BCA-001", "Operating Account", "BCA", valueobject.IDR, valueobject.NewMoneyIDRFromInt(opening))
		require.NoError(t, err)
		return account
	}

	t.Run("deposit increases balance", func(t *testing.T) {
		account := newAccount(t, 0)

		tx, err := account.Post(BankTransactionTypeDeposit, valueobject.NewMoneyIDRFromInt(500000), PostOptions{Reference: "INV-1"})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500000).Equal(account.Balance))
		assert.True(t, decimal.NewFromInt(500000).Equal(tx.BalanceAfter))
		assert.True(t, tx.SignedAmount.IsPositive())
		assert.Equal(t, 2, account.Version)
	})

	t.Run("withdrawal exceeding balance is rejected", func(t *testing.T) {
		account := newAccount(t, 1000000)

		tx, err := account.Post(BankTransactionTypeWithdrawal, valueobject.NewMoneyIDRFromInt(1200000), PostOptions{})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INSUFFICIENT_FUNDS"))
		assert.Nil(t, tx)
		// Rejected posting leaves no trace
		assert.True(t, decimal.NewFromInt(1000000).Equal(account.Balance))
		assert.Len(t, account.Transactions, 1)
	})

	t.Run("withdrawal within balance succeeds", func(t *testing.T) {
		account := newAccount(t, 1000000)

		tx, err := account.Post(BankTransactionTypeWithdrawal, valueobject.NewMoneyIDRFromInt(400000), PostOptions{})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(600000).Equal(account.Balance))
		assert.True(t, decimal.NewFromInt(600000).Equal(tx.BalanceAfter))
		assert.True(t, decimal.NewFromInt(-400000).Equal(tx.SignedAmount))
	})

	t.Run("overdraft allowed when explicitly requested", func(t *testing.T) {
		account := newAccount(t, 100000)

		tx, err := account.Post(BankTransactionTypeFee, valueobject.NewMoneyIDRFromInt(150000), PostOptions{AllowOverdraft: true})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-50000).Equal(account.Balance))
		assert.True(t, decimal.NewFromInt(-50000).Equal(tx.BalanceAfter))
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		account := newAccount(t, 1000000)

		_, err := account.Post(BankTransactionTypeDeposit, valueobject.ZeroIDR(), PostOptions{})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_AMOUNT"))
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		account := newAccount(t, 1000000)

		_, err := account.Post(BankTransactionTypeDeposit, valueobject.NewMoneyIDR(decimal.NewFromInt(-100)), PostOptions{})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_AMOUNT"))
	})

	t.Run("inactive account rejects postings", func(t *testing.T) {
		account := newAccount(t, 1000000)
		require.NoError(t, account.Deactivate())

		_, err := account.Post(BankTransactionTypeDeposit, valueobject.NewMoneyIDRFromInt(100), PostOptions{})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INACTIVE_ACCOUNT"))
	})

	t.Run("unknown transaction type is rejected", func(t *testing.T) {
		account := newAccount(t, 1000000)

		_, err := account.Post(BankTransactionType("BOGUS"), valueobject.NewMoneyIDRFromInt(100), PostOptions{})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_TRANSACTION_TYPE"))
	})

	t.Run("journal sum always equals balance", func(t *testing.T) {
		account := newAccount(t, 1000000)

		_, err := account.Post(BankTransactionTypeWithdrawal, valueobject.NewMoneyIDRFromInt(400000), PostOptions{})
		require.NoError(t, err)
		_, err = account.Post(BankTransactionTypeInterest, valueobject.NewMoneyIDRFromInt(2500), PostOptions{})
		require.NoError(t, err)
		_, err = account.Post(BankTransactionTypeFee, valueobject.NewMoneyIDRFromInt(15000), PostOptions{})
		require.NoError(t, err)

		assert.True(t, account.JournalSum().Equal(account.Balance))
		assert.True(t, decimal.NewFromInt(587500).Equal(account.Balance))
	})
}

func TestBankAccount_Reconcile(t *testing.T) {
	account, err := NewBankAccount("BCA-001", "Operating Account", "BCA", valueobject.IDR, valueobject.ZeroIDR())
	require.NoError(t, err)

	tx1, err := account.Post(BankTransactionTypeDeposit, valueobject.NewMoneyIDRFromInt(100000), PostOptions{})
	require.NoError(t, err)
	tx2, err := account.Post(BankTransactionTypeWithdrawal, valueobject.NewMoneyIDRFromInt(30000), PostOptions{})
	require.NoError(t, err)

	t.Run("marks transactions reconciled without balance effect", func(t *testing.T) {
		balanceBefore := account.Balance
		date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		flipped, err := account.Reconcile([]uuid.UUID{tx1.ID, tx2.ID}, date)

		require.NoError(t, err)
		assert.Len(t, flipped, 2)
		assert.True(t, balanceBefore.Equal(account.Balance))
		assert.Equal(t, 0, account.UnreconciledCount())
		require.NotNil(t, account.GetTransaction(tx1.ID).ReconciledDate)
		assert.Equal(t, date, *account.GetTransaction(tx1.ID).ReconciledDate)
	})

	t.Run("reconcile is idempotent", func(t *testing.T) {
		flipped, err := account.Reconcile([]uuid.UUID{tx1.ID}, time.Now())

		require.NoError(t, err)
		assert.Empty(t, flipped)
	})

	t.Run("unknown transaction is rejected", func(t *testing.T) {
		_, err := account.Reconcile([]uuid.UUID{uuid.New()}, time.Now())

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "NOT_FOUND"))
	})

	t.Run("empty transaction list is rejected", func(t *testing.T) {
		_, err := account.Reconcile(nil, time.Now())

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_INPUT"))
	})
}

func TestBankAccount_Lifecycle(t *testing.T) {
	account, err := NewBankAccount("BCA-001", "Operating Account", "BCA", valueobject.IDR, valueobject.ZeroIDR())
	require.NoError(t, err)

	require.NoError(t, account.Deactivate())
	assert.False(t, account.Active)

	err = account.Deactivate()
	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorCode(err, "INVALID_STATE"))

	require.NoError(t, account.Activate())
	assert.True(t, account.Active)

	err = account.Activate()
	require.Error(t, err)
	assert.True(t, shared.IsDomainErrorCode(err, "INVALID_STATE"))
}

func TestBankTransactionType_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(1000)

	inflows := []BankTransactionType{
		BankTransactionTypeDeposit, BankTransactionTypeTransferIn,
		BankTransactionTypeInterest, BankTransactionTypeCheckDeposit,
	}
	outflows := []BankTransactionType{
		BankTransactionTypeWithdrawal, BankTransactionTypeTransferOut,
		BankTransactionTypeFee, BankTransactionTypeCheckWithdrawal,
	}

	for _, txType := range inflows {
		assert.True(t, txType.SignedAmount(amount).Equal(amount), "type %s", txType)
	}
	for _, txType := range outflows {
		assert.True(t, txType.SignedAmount(amount).Equal(amount.Neg()), "type %s", txType)
	}
}
