package finance

import (
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountOpenedEvent is published when a new bank account is created
type BankAccountOpenedEvent struct {
	shared.BaseDomainEvent
	AccountNumber  string          `json:"account_number"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// NewBankAccountOpenedEvent creates a new BankAccountOpenedEvent
func NewBankAccountOpenedEvent(account *BankAccount) *BankAccountOpenedEvent {
	return &BankAccountOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("bank_account.opened", "BankAccount", account.ID),
		AccountNumber:   account.AccountNumber,
		Name:            account.Name,
		BankName:        account.BankName,
		OpeningBalance:  account.Balance,
	}
}

// BankTransactionPostedEvent is published when a ledger entry is appended
type BankTransactionPostedEvent struct {
	shared.BaseDomainEvent
	TransactionID   uuid.UUID           `json:"transaction_id"`
	TransactionType BankTransactionType `json:"transaction_type"`
	Amount          decimal.Decimal     `json:"amount"`
	SignedAmount    decimal.Decimal     `json:"signed_amount"`
	BalanceAfter    decimal.Decimal     `json:"balance_after"`
	Reference       string              `json:"reference,omitempty"`
}

// NewBankTransactionPostedEvent creates a new BankTransactionPostedEvent
func NewBankTransactionPostedEvent(account *BankAccount, tx *BankTransaction) *BankTransactionPostedEvent {
	return &BankTransactionPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("bank_account.transaction_posted", "BankAccount", account.ID),
		TransactionID:   tx.ID,
		TransactionType: tx.Type,
		Amount:          tx.Amount,
		SignedAmount:    tx.SignedAmount,
		BalanceAfter:    tx.BalanceAfter,
		Reference:       tx.Reference,
	}
}

// BankTransactionsReconciledEvent is published when ledger entries are
// matched against a bank statement
type BankTransactionsReconciledEvent struct {
	shared.BaseDomainEvent
	TransactionIDs []uuid.UUID `json:"transaction_ids"`
	ReconciledDate time.Time   `json:"reconciled_date"`
}

// NewBankTransactionsReconciledEvent creates a new BankTransactionsReconciledEvent
func NewBankTransactionsReconciledEvent(account *BankAccount, txIDs []uuid.UUID, date time.Time) *BankTransactionsReconciledEvent {
	return &BankTransactionsReconciledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("bank_account.transactions_reconciled", "BankAccount", account.ID),
		TransactionIDs:  txIDs,
		ReconciledDate:  date,
	}
}

// BankAccountDeactivatedEvent is published when an account is deactivated
type BankAccountDeactivatedEvent struct {
	shared.BaseDomainEvent
	AccountNumber string `json:"account_number"`
}

// NewBankAccountDeactivatedEvent creates a new BankAccountDeactivatedEvent
func NewBankAccountDeactivatedEvent(account *BankAccount) *BankAccountDeactivatedEvent {
	return &BankAccountDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("bank_account.deactivated", "BankAccount", account.ID),
		AccountNumber:   account.AccountNumber,
	}
}
