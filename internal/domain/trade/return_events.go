package trade

import (
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnRequestedEvent is published when a return is filed
type ReturnRequestedEvent struct {
	shared.BaseDomainEvent
	ReturnNumber string     `json:"return_number"`
	Type         ReturnType `json:"type"`
	SaleID       *uuid.UUID `json:"sale_id,omitempty"`
	PurchaseID   *uuid.UUID `json:"purchase_id,omitempty"`
	Reason       string     `json:"reason"`
}

// NewReturnRequestedEvent creates a new ReturnRequestedEvent
func NewReturnRequestedEvent(r *Return) *ReturnRequestedEvent {
	return &ReturnRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("return.requested", "Return", r.ID),
		ReturnNumber:    r.ReturnNumber,
		Type:            r.Type,
		SaleID:          r.SaleID,
		PurchaseID:      r.PurchaseID,
		Reason:          r.Reason,
	}
}

// ReturnApprovedEvent is published when a return is approved
type ReturnApprovedEvent struct {
	shared.BaseDomainEvent
	ReturnNumber string          `json:"return_number"`
	Type         ReturnType      `json:"type"`
	ApprovedBy   uuid.UUID       `json:"approved_by"`
	TotalRefund  decimal.Decimal `json:"total_refund"`
}

// NewReturnApprovedEvent creates a new ReturnApprovedEvent
func NewReturnApprovedEvent(r *Return) *ReturnApprovedEvent {
	evt := &ReturnApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("return.approved", "Return", r.ID),
		ReturnNumber:    r.ReturnNumber,
		Type:            r.Type,
		TotalRefund:     r.TotalRefund,
	}
	if r.ApprovedBy != nil {
		evt.ApprovedBy = *r.ApprovedBy
	}
	return evt
}

// ReturnRejectedEvent is published when a return is rejected
type ReturnRejectedEvent struct {
	shared.BaseDomainEvent
	ReturnNumber string    `json:"return_number"`
	RejectedBy   uuid.UUID `json:"rejected_by"`
	Reason       string    `json:"reason"`
}

// NewReturnRejectedEvent creates a new ReturnRejectedEvent
func NewReturnRejectedEvent(r *Return) *ReturnRejectedEvent {
	evt := &ReturnRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("return.rejected", "Return", r.ID),
		ReturnNumber:    r.ReturnNumber,
		Reason:          r.RejectionReason,
	}
	if r.RejectedBy != nil {
		evt.RejectedBy = *r.RejectedBy
	}
	return evt
}

// StockDeltaInfo captures one signed stock movement for event consumers
type StockDeltaInfo struct {
	ProductID uuid.UUID       `json:"product_id"`
	Delta     decimal.Decimal `json:"delta"`
}

// ReturnCompletedEvent is published when a return is completed and stock moved
type ReturnCompletedEvent struct {
	shared.BaseDomainEvent
	ReturnNumber string           `json:"return_number"`
	Type         ReturnType       `json:"type"`
	TotalRefund  decimal.Decimal  `json:"total_refund"`
	StockDeltas  []StockDeltaInfo `json:"stock_deltas"`
}

// NewReturnCompletedEvent creates a new ReturnCompletedEvent
func NewReturnCompletedEvent(r *Return, deltas []StockDelta) *ReturnCompletedEvent {
	infos := make([]StockDeltaInfo, 0, len(deltas))
	for _, d := range deltas {
		infos = append(infos, StockDeltaInfo{ProductID: d.ProductID, Delta: d.Delta})
	}
	return &ReturnCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("return.completed", "Return", r.ID),
		ReturnNumber:    r.ReturnNumber,
		Type:            r.Type,
		TotalRefund:     r.TotalRefund,
		StockDeltas:     infos,
	}
}
