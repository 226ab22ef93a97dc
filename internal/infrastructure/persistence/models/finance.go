package models

import (
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountModel is the persistence model for the BankAccount aggregate root.
type BankAccountModel struct {
	AggregateModel
	AccountNumber string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string                 `gorm:"type:varchar(200);not null"`
	BankName      string                 `gorm:"type:varchar(100)"`
	Currency      string                 `gorm:"type:varchar(3);not null;default:'IDR'"`
	Balance       decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Active        bool                   `gorm:"not null;default:true;index"`
	Remark        string                 `gorm:"type:text"`
	Transactions  []BankTransactionModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount entity.
func (m *BankAccountModel) ToDomain() *finance.BankAccount {
	account := &finance.BankAccount{
		AccountNumber: m.AccountNumber,
		Name:          m.Name,
		BankName:      m.BankName,
		Currency:      valueobject.Currency(m.Currency),
		Balance:       m.Balance,
		Active:        m.Active,
		Remark:        m.Remark,
		Transactions:  make([]finance.BankTransaction, len(m.Transactions)),
	}
	m.PopulateAggregateRoot(&account.BaseAggregateRoot)
	for i := range m.Transactions {
		account.Transactions[i] = *m.Transactions[i].ToDomain()
	}
	return account
}

// FromDomain populates the persistence model from a domain BankAccount entity.
// Transactions are intentionally not copied: ledger entries are inserted
// individually so an update of the account never rewrites the journal.
func (m *BankAccountModel) FromDomain(account *finance.BankAccount) {
	m.FromDomainAggregateRoot(account.BaseAggregateRoot)
	m.AccountNumber = account.AccountNumber
	m.Name = account.Name
	m.BankName = account.BankName
	m.Currency = string(account.Currency)
	m.Balance = account.Balance
	m.Active = account.Active
	m.Remark = account.Remark
}

// BankAccountModelFromDomain creates a new persistence model from a domain BankAccount.
func BankAccountModelFromDomain(account *finance.BankAccount) *BankAccountModel {
	m := &BankAccountModel{}
	m.FromDomain(account)
	return m
}

// BankTransactionModel is the persistence model for a bank ledger entry.
type BankTransactionModel struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primary_key"`
	AccountID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Type           finance.BankTransactionType `gorm:"type:varchar(20);not null;index"`
	Amount         decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	SignedAmount   decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	BalanceAfter   decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Reference      string                      `gorm:"type:varchar(100);index"`
	Remark         string                      `gorm:"type:varchar(500)"`
	Reconciled     bool                        `gorm:"not null;default:false;index"`
	ReconciledDate *time.Time
	OccurredAt     time.Time `gorm:"not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BankTransactionModel) TableName() string {
	return "bank_transactions"
}

// ToDomain converts the persistence model to a domain BankTransaction.
func (m *BankTransactionModel) ToDomain() *finance.BankTransaction {
	return &finance.BankTransaction{
		ID:             m.ID,
		AccountID:      m.AccountID,
		Type:           m.Type,
		Amount:         m.Amount,
		SignedAmount:   m.SignedAmount,
		BalanceAfter:   m.BalanceAfter,
		Reference:      m.Reference,
		Remark:         m.Remark,
		Reconciled:     m.Reconciled,
		ReconciledDate: m.ReconciledDate,
		OccurredAt:     m.OccurredAt,
		CreatedAt:      m.CreatedAt,
	}
}

// BankTransactionModelFromDomain creates a persistence model from a domain BankTransaction.
func BankTransactionModelFromDomain(tx *finance.BankTransaction) *BankTransactionModel {
	return &BankTransactionModel{
		ID:             tx.ID,
		AccountID:      tx.AccountID,
		Type:           tx.Type,
		Amount:         tx.Amount,
		SignedAmount:   tx.SignedAmount,
		BalanceAfter:   tx.BalanceAfter,
		Reference:      tx.Reference,
		Remark:         tx.Remark,
		Reconciled:     tx.Reconciled,
		ReconciledDate: tx.ReconciledDate,
		OccurredAt:     tx.OccurredAt,
		CreatedAt:      tx.CreatedAt,
	}
}

// AccountPayableModel is the persistence model for the AccountPayable aggregate root.
type AccountPayableModel struct {
	AggregateModel
	PayableNumber     string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	SupplierName      string                      `gorm:"type:varchar(200);not null"`
	SourceType        finance.PayableSourceType   `gorm:"type:varchar(30);not null;index"`
	SourceID          *uuid.UUID                  `gorm:"type:uuid;index"`
	SourceNumber      string                      `gorm:"type:varchar(50)"`
	TotalAmount       decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	PaidAmount        decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	OutstandingAmount decimal.Decimal             `gorm:"type:decimal(18,4);not null;index"`
	Status            finance.SettlementStatus    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DueDate           *time.Time                  `gorm:"index"`
	PaymentRecords    []PayablePaymentRecordModel `gorm:"foreignKey:PayableID;references:ID"`
	Notes             []PayableNoteModel          `gorm:"foreignKey:PayableID;references:ID"`
	PaidAt            *time.Time
}

// TableName returns the table name for GORM
func (AccountPayableModel) TableName() string {
	return "account_payables"
}

// ToDomain converts the persistence model to a domain AccountPayable entity.
func (m *AccountPayableModel) ToDomain() *finance.AccountPayable {
	ap := &finance.AccountPayable{
		PayableNumber:     m.PayableNumber,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		SourceType:        m.SourceType,
		SourceID:          m.SourceID,
		SourceNumber:      m.SourceNumber,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		OutstandingAmount: m.OutstandingAmount,
		Status:            m.Status,
		DueDate:           m.DueDate,
		PaidAt:            m.PaidAt,
		PaymentRecords:    make([]finance.PayablePaymentRecord, len(m.PaymentRecords)),
		Notes:             make([]finance.PayableNote, len(m.Notes)),
	}
	m.PopulateAggregateRoot(&ap.BaseAggregateRoot)
	for i := range m.PaymentRecords {
		ap.PaymentRecords[i] = *m.PaymentRecords[i].ToDomain()
	}
	for i := range m.Notes {
		ap.Notes[i] = *m.Notes[i].ToDomain()
	}
	return ap
}

// FromDomain populates the persistence model from a domain AccountPayable entity.
func (m *AccountPayableModel) FromDomain(ap *finance.AccountPayable) {
	m.FromDomainAggregateRoot(ap.BaseAggregateRoot)
	m.PayableNumber = ap.PayableNumber
	m.SupplierID = ap.SupplierID
	m.SupplierName = ap.SupplierName
	m.SourceType = ap.SourceType
	m.SourceID = ap.SourceID
	m.SourceNumber = ap.SourceNumber
	m.TotalAmount = ap.TotalAmount
	m.PaidAmount = ap.PaidAmount
	m.OutstandingAmount = ap.OutstandingAmount
	m.Status = ap.Status
	m.DueDate = ap.DueDate
	m.PaidAt = ap.PaidAt
	m.PaymentRecords = make([]PayablePaymentRecordModel, len(ap.PaymentRecords))
	for i := range ap.PaymentRecords {
		m.PaymentRecords[i] = *PayablePaymentRecordModelFromDomain(&ap.PaymentRecords[i])
	}
	m.Notes = make([]PayableNoteModel, len(ap.Notes))
	for i := range ap.Notes {
		m.Notes[i] = *PayableNoteModelFromDomain(&ap.Notes[i])
	}
}

// AccountPayableModelFromDomain creates a new persistence model from a domain AccountPayable.
func AccountPayableModelFromDomain(ap *finance.AccountPayable) *AccountPayableModel {
	m := &AccountPayableModel{}
	m.FromDomain(ap)
	return m
}

// PayablePaymentRecordModel is the persistence model for a payable payment.
type PayablePaymentRecordModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	PayableID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	BankAccountID *uuid.UUID            `gorm:"type:uuid;index"`
	Method        finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Reference     string                `gorm:"type:varchar(100)"`
	AppliedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayablePaymentRecordModel) TableName() string {
	return "payable_payment_records"
}

// ToDomain converts the persistence model to a domain PayablePaymentRecord.
func (m *PayablePaymentRecordModel) ToDomain() *finance.PayablePaymentRecord {
	return &finance.PayablePaymentRecord{
		ID:            m.ID,
		PayableID:     m.PayableID,
		BankAccountID: m.BankAccountID,
		Method:        m.Method,
		Amount:        m.Amount,
		Reference:     m.Reference,
		AppliedAt:     m.AppliedAt,
	}
}

// PayablePaymentRecordModelFromDomain creates a persistence model from a domain payment record.
func PayablePaymentRecordModelFromDomain(pr *finance.PayablePaymentRecord) *PayablePaymentRecordModel {
	return &PayablePaymentRecordModel{
		ID:            pr.ID,
		PayableID:     pr.PayableID,
		BankAccountID: pr.BankAccountID,
		Method:        pr.Method,
		Amount:        pr.Amount,
		Reference:     pr.Reference,
		AppliedAt:     pr.AppliedAt,
	}
}

// PayableNoteModel is the persistence model for a payable note.
type PayableNoteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PayableID uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    string    `gorm:"type:varchar(100);not null"`
	Text      string    `gorm:"type:varchar(1000);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PayableNoteModel) TableName() string {
	return "payable_notes"
}

// ToDomain converts the persistence model to a domain PayableNote.
func (m *PayableNoteModel) ToDomain() *finance.PayableNote {
	return &finance.PayableNote{
		ID:        m.ID,
		PayableID: m.PayableID,
		Author:    m.Author,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

// PayableNoteModelFromDomain creates a persistence model from a domain note.
func PayableNoteModelFromDomain(n *finance.PayableNote) *PayableNoteModel {
	return &PayableNoteModel{
		ID:        n.ID,
		PayableID: n.PayableID,
		Author:    n.Author,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}
