package finance

import (
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountPayableCreatedEvent is published when a payable is created
type AccountPayableCreatedEvent struct {
	shared.BaseDomainEvent
	PayableNumber string            `json:"payable_number"`
	SupplierID    uuid.UUID         `json:"supplier_id"`
	SourceType    PayableSourceType `json:"source_type"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
}

// NewAccountPayableCreatedEvent creates a new AccountPayableCreatedEvent
func NewAccountPayableCreatedEvent(ap *AccountPayable) *AccountPayableCreatedEvent {
	return &AccountPayableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("account_payable.created", "AccountPayable", ap.ID),
		PayableNumber:   ap.PayableNumber,
		SupplierID:      ap.SupplierID,
		SourceType:      ap.SourceType,
		TotalAmount:     ap.TotalAmount,
	}
}

// AccountPayablePartiallyPaidEvent is published when a partial payment is applied
type AccountPayablePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	PayableNumber     string          `json:"payable_number"`
	PaymentAmount     decimal.Decimal `json:"payment_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// NewAccountPayablePartiallyPaidEvent creates a new AccountPayablePartiallyPaidEvent
func NewAccountPayablePartiallyPaidEvent(ap *AccountPayable, payment valueobject.Money) *AccountPayablePartiallyPaidEvent {
	return &AccountPayablePartiallyPaidEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("account_payable.partially_paid", "AccountPayable", ap.ID),
		PayableNumber:     ap.PayableNumber,
		PaymentAmount:     payment.Amount(),
		PaidAmount:        ap.PaidAmount,
		OutstandingAmount: ap.OutstandingAmount,
	}
}

// AccountPayablePaidEvent is published when a payable becomes fully settled
type AccountPayablePaidEvent struct {
	shared.BaseDomainEvent
	PayableNumber string          `json:"payable_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewAccountPayablePaidEvent creates a new AccountPayablePaidEvent
func NewAccountPayablePaidEvent(ap *AccountPayable) *AccountPayablePaidEvent {
	return &AccountPayablePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("account_payable.paid", "AccountPayable", ap.ID),
		PayableNumber:   ap.PayableNumber,
		TotalAmount:     ap.TotalAmount,
	}
}
