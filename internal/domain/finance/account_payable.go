package finance

import (
	"fmt"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableSourceType represents the type of source document that created the payable
type PayableSourceType string

const (
	PayableSourceTypePurchase PayableSourceType = "PURCHASE"
	PayableSourceTypeManual   PayableSourceType = "MANUAL"
)

// IsValid checks if the source type is valid
func (s PayableSourceType) IsValid() bool {
	switch s {
	case PayableSourceTypePurchase, PayableSourceTypeManual:
		return true
	}
	return false
}

// PaymentMethod represents how a payable payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheck        PaymentMethod = "CHECK"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCheck:
		return true
	}
	return false
}

// PayablePaymentRecord represents a payment applied to the payable
type PayablePaymentRecord struct {
	ID            uuid.UUID       `json:"id"`
	PayableID     uuid.UUID       `json:"payable_id"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"` // Nil for cash payments
	Method        PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	AppliedAt     time.Time       `json:"applied_at"`
}

// NewPayablePaymentRecord creates a new payment record
func NewPayablePaymentRecord(payableID uuid.UUID, bankAccountID *uuid.UUID, method PaymentMethod, amount valueobject.Money, reference string) *PayablePaymentRecord {
	return &PayablePaymentRecord{
		ID:            uuid.New(),
		PayableID:     payableID,
		BankAccountID: bankAccountID,
		Method:        method,
		Amount:        amount.Amount(),
		Reference:     reference,
		AppliedAt:     time.Now(),
	}
}

// GetAmountMoney returns the amount as Money value object
func (p *PayablePaymentRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(p.Amount)
}

// PayableNote is a timestamped, attributed annotation on a payable.
// Notes are append-only.
type PayableNote struct {
	ID        uuid.UUID `json:"id"`
	PayableID uuid.UUID `json:"payable_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountPayable represents an account payable aggregate root.
// It tracks money owed to a supplier for goods received. Status is never
// assigned directly; it is re-derived from the amounts after every mutation.
type AccountPayable struct {
	shared.BaseAggregateRoot
	PayableNumber     string                 `json:"payable_number"`
	SupplierID        uuid.UUID              `json:"supplier_id"`
	SupplierName      string                 `json:"supplier_name"`
	SourceType        PayableSourceType      `json:"source_type"`
	SourceID          *uuid.UUID             `json:"source_id,omitempty"` // Source document (e.g. Purchase), nil for manual payables
	SourceNumber      string                 `json:"source_number"`
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	PaidAmount        decimal.Decimal        `json:"paid_amount"`
	OutstandingAmount decimal.Decimal        `json:"outstanding_amount"`
	Status            SettlementStatus       `json:"status"`
	DueDate           *time.Time             `json:"due_date,omitempty"`
	PaymentRecords    []PayablePaymentRecord `json:"payment_records"`
	Notes             []PayableNote          `json:"notes"`
	PaidAt            *time.Time             `json:"paid_at,omitempty"`
}

// NewAccountPayable creates a new account payable
func NewAccountPayable(
	payableNumber string,
	supplierID uuid.UUID,
	supplierName string,
	sourceType PayableSourceType,
	sourceID *uuid.UUID,
	sourceNumber string,
	totalAmount valueobject.Money,
	dueDate *time.Time,
) (*AccountPayable, error) {
	if payableNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYABLE_NUMBER", "Payable number cannot be empty")
	}
	if len(payableNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_PAYABLE_NUMBER", "Payable number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Source type is not valid")
	}
	if sourceType == PayableSourceTypePurchase && (sourceID == nil || *sourceID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_SOURCE_ID", "Source ID is required for purchase payables")
	}
	if totalAmount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}

	ap := &AccountPayable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PayableNumber:     payableNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		SourceType:        sourceType,
		SourceID:          sourceID,
		SourceNumber:      sourceNumber,
		TotalAmount:       totalAmount.Amount(),
		PaidAmount:        decimal.Zero,
		OutstandingAmount: totalAmount.Amount(),
		Status:            SettlementStatusPending,
		DueDate:           dueDate,
		PaymentRecords:    make([]PayablePaymentRecord, 0),
		Notes:             make([]PayableNote, 0),
	}

	ap.AddDomainEvent(NewAccountPayableCreatedEvent(ap))

	return ap, nil
}

// ApplyPayment applies a payment to the payable. A payment that would push
// PaidAmount past TotalAmount is rejected outright; partial payments against
// the remainder are the supported path.
func (ap *AccountPayable) ApplyPayment(amount valueobject.Money, bankAccountID *uuid.UUID, method PaymentMethod, reference string) (*PayablePaymentRecord, error) {
	if ap.Status.IsSettled() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to payable in %s status", ap.Status))
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if amount.Amount().GreaterThan(ap.OutstandingAmount) {
		return nil, shared.ErrOverPayment
	}

	record := NewPayablePaymentRecord(ap.ID, bankAccountID, method, amount, reference)
	ap.PaymentRecords = append(ap.PaymentRecords, *record)

	ap.PaidAmount = ap.PaidAmount.Add(amount.Amount())
	ap.OutstandingAmount = ap.TotalAmount.Sub(ap.PaidAmount)
	ap.Status = DeriveSettlementStatus(ap.TotalAmount, ap.PaidAmount)

	if ap.Status.IsSettled() {
		now := time.Now()
		ap.PaidAt = &now
		ap.AddDomainEvent(NewAccountPayablePaidEvent(ap))
	} else {
		ap.AddDomainEvent(NewAccountPayablePartiallyPaidEvent(ap, amount))
	}

	ap.Touch()
	ap.IncrementVersion()

	return record, nil
}

// AddNote appends a timestamped note
func (ap *AccountPayable) AddNote(author, text string) error {
	if text == "" {
		return shared.NewDomainError("INVALID_INPUT", "Note text cannot be empty")
	}

	ap.Notes = append(ap.Notes, PayableNote{
		ID:        uuid.New(),
		PayableID: ap.ID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
	})
	ap.Touch()
	ap.IncrementVersion()

	return nil
}

// ReviseTotalAmount changes the amount owed, for example after a supplier
// credit note or invoice correction. The new total cannot drop below what has
// already been paid. Outstanding amount and status are re-derived; a revision
// that exactly matches the paid amount settles the payable.
func (ap *AccountPayable) ReviseTotalAmount(totalAmount valueobject.Money) error {
	newTotal := totalAmount.Amount()
	if newTotal.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if newTotal.LessThan(ap.PaidAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be less than the amount already paid")
	}

	wasSettled := ap.Status.IsSettled()

	ap.TotalAmount = newTotal
	ap.OutstandingAmount = newTotal.Sub(ap.PaidAmount)
	ap.Status = DeriveSettlementStatus(ap.TotalAmount, ap.PaidAmount)

	if ap.Status.IsSettled() && !wasSettled {
		now := time.Now()
		ap.PaidAt = &now
		ap.AddDomainEvent(NewAccountPayablePaidEvent(ap))
	} else if !ap.Status.IsSettled() {
		ap.PaidAt = nil
	}

	ap.Touch()
	ap.IncrementVersion()

	return nil
}

// SetDueDate updates the due date
func (ap *AccountPayable) SetDueDate(dueDate *time.Time) error {
	if ap.Status.IsSettled() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify due date for a settled payable")
	}

	ap.DueDate = dueDate
	ap.Touch()
	ap.IncrementVersion()

	return nil
}

// CanRemove returns an error when the payable must be kept for the books.
// A settled payable is part of the paid history and cannot be removed;
// a payable with partial payments cannot be removed either.
func (ap *AccountPayable) CanRemove() error {
	if ap.Status.IsSettled() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove a fully paid payable")
	}
	if ap.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove a payable with applied payments")
	}
	return nil
}

// Helper methods

// GetTotalAmountMoney returns total amount as Money
func (ap *AccountPayable) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(ap.TotalAmount)
}

// GetPaidAmountMoney returns paid amount as Money
func (ap *AccountPayable) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(ap.PaidAmount)
}

// GetOutstandingAmountMoney returns outstanding amount as Money
func (ap *AccountPayable) GetOutstandingAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(ap.OutstandingAmount)
}

// IsPaid returns true if the payable is fully settled
func (ap *AccountPayable) IsPaid() bool {
	return ap.Status.IsSettled()
}

// IsOverdue returns true if the payable has a due date in the past and is unsettled
func (ap *AccountPayable) IsOverdue(now time.Time) bool {
	return ap.DueDate != nil && ap.DueDate.Before(now) && !ap.Status.IsSettled()
}
