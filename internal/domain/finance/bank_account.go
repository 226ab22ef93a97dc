package finance

import (
	"fmt"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankTransactionType represents the type of a bank ledger entry
type BankTransactionType string

const (
	BankTransactionTypeDeposit         BankTransactionType = "DEPOSIT"
	BankTransactionTypeWithdrawal      BankTransactionType = "WITHDRAWAL"
	BankTransactionTypeTransferIn      BankTransactionType = "TRANSFER_IN"
	BankTransactionTypeTransferOut     BankTransactionType = "TRANSFER_OUT"
	BankTransactionTypeFee             BankTransactionType = "FEE"
	BankTransactionTypeInterest        BankTransactionType = "INTEREST"
	BankTransactionTypeCheckDeposit    BankTransactionType = "CHECK_DEPOSIT"
	BankTransactionTypeCheckWithdrawal BankTransactionType = "CHECK_WITHDRAWAL"
)

// IsValid checks if the type is a valid BankTransactionType
func (t BankTransactionType) IsValid() bool {
	switch t {
	case BankTransactionTypeDeposit, BankTransactionTypeWithdrawal,
		BankTransactionTypeTransferIn, BankTransactionTypeTransferOut,
		BankTransactionTypeFee, BankTransactionTypeInterest,
		BankTransactionTypeCheckDeposit, BankTransactionTypeCheckWithdrawal:
		return true
	}
	return false
}

// String returns the string representation of BankTransactionType
func (t BankTransactionType) String() string {
	return string(t)
}

// IsInflow returns true if the type increases the account balance
func (t BankTransactionType) IsInflow() bool {
	switch t {
	case BankTransactionTypeDeposit, BankTransactionTypeTransferIn,
		BankTransactionTypeInterest, BankTransactionTypeCheckDeposit:
		return true
	}
	return false
}

// SignedAmount returns the balance delta for the given positive amount
func (t BankTransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t.IsInflow() {
		return amount
	}
	return amount.Neg()
}

// BankTransaction is an append-only ledger entry for a bank account.
// Entries are created only through BankAccount and are never mutated after
// creation, except to flip the reconciled flag.
type BankTransaction struct {
	ID             uuid.UUID           `json:"id"`
	AccountID      uuid.UUID           `json:"account_id"`
	Type           BankTransactionType `json:"type"`
	Amount         decimal.Decimal     `json:"amount"`        // Always positive
	SignedAmount   decimal.Decimal     `json:"signed_amount"` // Balance delta (sign from type)
	BalanceAfter   decimal.Decimal     `json:"balance_after"` // Account balance snapshot after this entry
	Reference      string              `json:"reference"`
	Remark         string              `json:"remark"`
	Reconciled     bool                `json:"reconciled"`
	ReconciledDate *time.Time          `json:"reconciled_date,omitempty"`
	OccurredAt     time.Time           `json:"occurred_at"`
	CreatedAt      time.Time           `json:"created_at"`
}

// MarkReconciled flips the reconciled flag. No-op when already reconciled.
func (t *BankTransaction) MarkReconciled(date time.Time) bool {
	if t.Reconciled {
		return false
	}
	t.Reconciled = true
	t.ReconciledDate = &date
	return true
}

// GetAmountMoney returns the amount as Money value object
func (t *BankTransaction) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(t.Amount)
}

// BankAccount is the aggregate root for a single-currency money ledger.
// Balance is an incrementally maintained cache over the transaction journal:
// Post is the only mutator, and every successful Post appends exactly one
// BankTransaction whose SignedAmount accounts for the balance change.
type BankAccount struct {
	shared.BaseAggregateRoot
	AccountNumber string               `json:"account_number"`
	Name          string               `json:"name"`
	BankName      string               `json:"bank_name"`
	Currency      valueobject.Currency `json:"currency"`
	Balance       decimal.Decimal      `json:"balance"`
	Active        bool                 `json:"active"`
	Remark        string               `json:"remark"`
	Transactions  []BankTransaction    `json:"transactions,omitempty"`
}

// PostOptions controls optional behavior of Post
type PostOptions struct {
	Reference      string
	Remark         string
	OccurredAt     *time.Time
	AllowOverdraft bool
}

// NewBankAccount creates a new bank account. A positive opening balance is
// recorded as a single pre-reconciled DEPOSIT entry so the journal fully
// accounts for the balance from day one.
func NewBankAccount(accountNumber, name, bankName string, currency valueobject.Currency, openingBalance valueobject.Money) (*BankAccount, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if len(accountNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if openingBalance.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Opening balance cannot be negative")
	}

	account := &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountNumber:     accountNumber,
		Name:              name,
		BankName:          bankName,
		Currency:          currency,
		Balance:           decimal.Zero,
		Active:            true,
		Transactions:      make([]BankTransaction, 0),
	}

	if openingBalance.Amount().IsPositive() {
		now := time.Now()
		opening := BankTransaction{
			ID:             uuid.New(),
			AccountID:      account.ID,
			Type:           BankTransactionTypeDeposit,
			Amount:         openingBalance.Amount(),
			SignedAmount:   openingBalance.Amount(),
			BalanceAfter:   openingBalance.Amount(),
			Remark:         "Opening balance",
			Reconciled:     true,
			ReconciledDate: &now,
			OccurredAt:     now,
			CreatedAt:      now,
		}
		account.Balance = openingBalance.Amount()
		account.Transactions = append(account.Transactions, opening)
	}

	account.AddDomainEvent(NewBankAccountOpenedEvent(account))

	return account, nil
}

// Post appends a ledger entry and applies its balance effect.
// The returned transaction must be persisted together with the updated
// balance in one atomic write.
func (a *BankAccount) Post(txType BankTransactionType, amount valueobject.Money, opts PostOptions) (*BankTransaction, error) {
	if !a.Active {
		return nil, shared.ErrInactiveAccount
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", fmt.Sprintf("Unknown transaction type %q", txType))
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	delta := txType.SignedAmount(amount.Amount())
	newBalance := a.Balance.Add(delta)
	if newBalance.IsNegative() && !opts.AllowOverdraft {
		return nil, shared.ErrInsufficientFunds
	}

	occurredAt := time.Now()
	if opts.OccurredAt != nil {
		occurredAt = *opts.OccurredAt
	}

	tx := BankTransaction{
		ID:           uuid.New(),
		AccountID:    a.ID,
		Type:         txType,
		Amount:       amount.Amount(),
		SignedAmount: delta,
		BalanceAfter: newBalance,
		Reference:    opts.Reference,
		Remark:       opts.Remark,
		OccurredAt:   occurredAt,
		CreatedAt:    time.Now(),
	}

	a.Balance = newBalance
	a.Transactions = append(a.Transactions, tx)
	a.Touch()
	a.IncrementVersion()

	a.AddDomainEvent(NewBankTransactionPostedEvent(a, &tx))

	return &tx, nil
}

// Reconcile marks the given transactions as reconciled against an external
// statement. It has no balance effect and is a no-op on already-reconciled
// entries. Returns the IDs that were actually flipped.
func (a *BankAccount) Reconcile(transactionIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if len(transactionIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction IDs cannot be empty")
	}

	reconciled := make([]uuid.UUID, 0, len(transactionIDs))
	for _, txID := range transactionIDs {
		idx := a.findTransaction(txID)
		if idx < 0 {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Transaction %s not found on account", txID))
		}
		if a.Transactions[idx].MarkReconciled(date) {
			reconciled = append(reconciled, txID)
		}
	}

	if len(reconciled) > 0 {
		a.Touch()
		a.IncrementVersion()
		a.AddDomainEvent(NewBankTransactionsReconciledEvent(a, reconciled, date))
	}

	return reconciled, nil
}

// Deactivate marks the account inactive. Inactive accounts reject new postings.
func (a *BankAccount) Deactivate() error {
	if !a.Active {
		return shared.NewDomainError("INVALID_STATE", "Account is already inactive")
	}
	a.Active = false
	a.Touch()
	a.IncrementVersion()

	a.AddDomainEvent(NewBankAccountDeactivatedEvent(a))

	return nil
}

// Activate re-enables a deactivated account
func (a *BankAccount) Activate() error {
	if a.Active {
		return shared.NewDomainError("INVALID_STATE", "Account is already active")
	}
	a.Active = true
	a.Touch()
	a.IncrementVersion()

	return nil
}

// HasTransactions returns true if any ledger entry exists for the account
func (a *BankAccount) HasTransactions() bool {
	return len(a.Transactions) > 0
}

// GetBalanceMoney returns the balance as Money value object
func (a *BankAccount) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(a.Balance)
}

// UnreconciledCount returns the number of unreconciled ledger entries
func (a *BankAccount) UnreconciledCount() int {
	count := 0
	for _, tx := range a.Transactions {
		if !tx.Reconciled {
			count++
		}
	}
	return count
}

// JournalSum returns the sum of all signed transaction amounts.
// For a consistent ledger this always equals the cached balance.
func (a *BankAccount) JournalSum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range a.Transactions {
		sum = sum.Add(tx.SignedAmount)
	}
	return sum
}

// GetTransaction returns a ledger entry by ID
func (a *BankAccount) GetTransaction(txID uuid.UUID) *BankTransaction {
	idx := a.findTransaction(txID)
	if idx < 0 {
		return nil
	}
	return &a.Transactions[idx]
}

func (a *BankAccount) findTransaction(txID uuid.UUID) int {
	for idx := range a.Transactions {
		if a.Transactions[idx].ID == txID {
			return idx
		}
	}
	return -1
}
