package finance

import (
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenBankAccountRequest is the request to open a bank account
type OpenBankAccountRequest struct {
	AccountNumber  string          `json:"account_number" binding:"required,max=50"`
	Name           string          `json:"name" binding:"required,max=200"`
	BankName       string          `json:"bank_name" binding:"max=200"`
	Currency       string          `json:"currency" binding:"omitempty,len=3"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Remark         string          `json:"remark" binding:"max=500"`
}

// PostTransactionRequest is the request to post a ledger entry
type PostTransactionRequest struct {
	Type           string          `json:"type" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Reference      string          `json:"reference" binding:"max=100"`
	Remark         string          `json:"remark" binding:"max=500"`
	OccurredAt     *time.Time      `json:"occurred_at"`
	AllowOverdraft bool            `json:"allow_overdraft"`
}

// TransferRequest is the request to move money between two accounts
type TransferRequest struct {
	FromAccountID uuid.UUID       `json:"from_account_id" binding:"required"`
	ToAccountID   uuid.UUID       `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Reference     string          `json:"reference" binding:"max=100"`
	Remark        string          `json:"remark" binding:"max=500"`
}

// ReconcileRequest is the request to mark ledger entries as reconciled
type ReconcileRequest struct {
	TransactionIDs []uuid.UUID `json:"transaction_ids" binding:"required,min=1"`
	Date           time.Time   `json:"date" binding:"required"`
}

// BankAccountListFilter carries list query parameters
type BankAccountListFilter struct {
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
	Active   *bool   `form:"active"`
	BankName *string `form:"bank_name"`
	Search   string  `form:"search"`
}

// TransactionListFilter carries ledger entry query parameters
type TransactionListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Type       *string    `form:"type"`
	Reconciled *bool      `form:"reconciled"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
}

// BankAccountResponse is the API representation of a bank account
type BankAccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	BankName      string          `json:"bank_name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Active        bool            `json:"active"`
	Remark        string          `json:"remark,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BankTransactionResponse is the API representation of a ledger entry
type BankTransactionResponse struct {
	ID             uuid.UUID       `json:"id"`
	AccountID      uuid.UUID       `json:"account_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	SignedAmount   decimal.Decimal `json:"signed_amount"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	Reference      string          `json:"reference,omitempty"`
	Remark         string          `json:"remark,omitempty"`
	Reconciled     bool            `json:"reconciled"`
	ReconciledDate *time.Time      `json:"reconciled_date,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// TransferResponse reports both legs of a completed transfer
type TransferResponse struct {
	OutTransaction BankTransactionResponse `json:"out_transaction"`
	InTransaction  BankTransactionResponse `json:"in_transaction"`
}

// JournalCheckResponse reports the ledger consistency check for an account
type JournalCheckResponse struct {
	AccountID  uuid.UUID       `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	JournalSum decimal.Decimal `json:"journal_sum"`
	Consistent bool            `json:"consistent"`
}

// ToBankAccountResponse converts a domain bank account to its API representation
func ToBankAccountResponse(account *finance.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		BankName:      account.BankName,
		Currency:      string(account.Currency),
		Balance:       account.Balance,
		Active:        account.Active,
		Remark:        account.Remark,
		Version:       account.Version,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// ToBankTransactionResponse converts a domain ledger entry to its API representation
func ToBankTransactionResponse(tx *finance.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:             tx.ID,
		AccountID:      tx.AccountID,
		Type:           string(tx.Type),
		Amount:         tx.Amount,
		SignedAmount:   tx.SignedAmount,
		BalanceAfter:   tx.BalanceAfter,
		Reference:      tx.Reference,
		Remark:         tx.Remark,
		Reconciled:     tx.Reconciled,
		ReconciledDate: tx.ReconciledDate,
		OccurredAt:     tx.OccurredAt,
	}
}

// ToBankTransactionResponses converts a slice of ledger entries
func ToBankTransactionResponses(txs []finance.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToBankTransactionResponse(&txs[i])
	}
	return out
}

// CreatePayableRequest is the request to create a payable manually
type CreatePayableRequest struct {
	SupplierID   uuid.UUID       `json:"supplier_id" binding:"required"`
	SupplierName string          `json:"supplier_name" binding:"required,max=200"`
	SourceNumber string          `json:"source_number" binding:"max=50"`
	TotalAmount  decimal.Decimal `json:"total_amount" binding:"required"`
	DueDate      *time.Time      `json:"due_date"`
}

// UpdatePayableRequest is the request to revise a payable. Absent fields are
// left untouched; paid amounts only change through payments.
type UpdatePayableRequest struct {
	TotalAmount *decimal.Decimal `json:"total_amount"`
	DueDate     *time.Time       `json:"due_date"`
}

// PayPayableRequest is the request to apply a payment to a payable
type PayPayableRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"`
	Reference     string          `json:"reference" binding:"max=100"`
}

// AddPayableNoteRequest is the request to append a note to a payable
type AddPayableNoteRequest struct {
	Author string `json:"author" binding:"required,max=100"`
	Text   string `json:"text" binding:"required,max=1000"`
}

// PayableListFilter carries payable list query parameters
type PayableListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     *string    `form:"status"`
	Overdue    *bool      `form:"overdue"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Search     string     `form:"search"`
}

// PayablePaymentResponse is the API representation of an applied payment
type PayablePaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	AppliedAt     time.Time       `json:"applied_at"`
}

// PayableNoteResponse is the API representation of a payable note
type PayableNoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// PayableResponse is the API representation of an account payable
type PayableResponse struct {
	ID                uuid.UUID                `json:"id"`
	PayableNumber     string                   `json:"payable_number"`
	SupplierID        uuid.UUID                `json:"supplier_id"`
	SupplierName      string                   `json:"supplier_name"`
	SourceType        string                   `json:"source_type"`
	SourceID          *uuid.UUID               `json:"source_id,omitempty"`
	SourceNumber      string                   `json:"source_number,omitempty"`
	TotalAmount       decimal.Decimal          `json:"total_amount"`
	PaidAmount        decimal.Decimal          `json:"paid_amount"`
	OutstandingAmount decimal.Decimal          `json:"outstanding_amount"`
	Status            string                   `json:"status"`
	DueDate           *time.Time               `json:"due_date,omitempty"`
	PaidAt            *time.Time               `json:"paid_at,omitempty"`
	Payments          []PayablePaymentResponse `json:"payments"`
	Notes             []PayableNoteResponse    `json:"notes"`
	Version           int                      `json:"version"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// ToPayableResponse converts a domain payable to its API representation
func ToPayableResponse(ap *finance.AccountPayable) *PayableResponse {
	payments := make([]PayablePaymentResponse, len(ap.PaymentRecords))
	for i, p := range ap.PaymentRecords {
		payments[i] = PayablePaymentResponse{
			ID:            p.ID,
			BankAccountID: p.BankAccountID,
			Method:        string(p.Method),
			Amount:        p.Amount,
			Reference:     p.Reference,
			AppliedAt:     p.AppliedAt,
		}
	}
	notes := make([]PayableNoteResponse, len(ap.Notes))
	for i, n := range ap.Notes {
		notes[i] = PayableNoteResponse{
			ID:        n.ID,
			Author:    n.Author,
			Text:      n.Text,
			CreatedAt: n.CreatedAt,
		}
	}
	return &PayableResponse{
		ID:                ap.ID,
		PayableNumber:     ap.PayableNumber,
		SupplierID:        ap.SupplierID,
		SupplierName:      ap.SupplierName,
		SourceType:        string(ap.SourceType),
		SourceID:          ap.SourceID,
		SourceNumber:      ap.SourceNumber,
		TotalAmount:       ap.TotalAmount,
		PaidAmount:        ap.PaidAmount,
		OutstandingAmount: ap.OutstandingAmount,
		Status:            ap.Status.String(),
		DueDate:           ap.DueDate,
		PaidAt:            ap.PaidAt,
		Payments:          payments,
		Notes:             notes,
		Version:           ap.Version,
		CreatedAt:         ap.CreatedAt,
		UpdatedAt:         ap.UpdatedAt,
	}
}
