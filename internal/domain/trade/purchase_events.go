package trade

import (
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseCreatedEvent is published when a purchase is created
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseNumber string    `json:"purchase_number"`
	SupplierID     uuid.UUID `json:"supplier_id"`
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase.created", "Purchase", p.ID),
		PurchaseNumber:  p.PurchaseNumber,
		SupplierID:      p.SupplierID,
	}
}

// ReceivedDeltaInfo captures one credited stock delta for event consumers
type ReceivedDeltaInfo struct {
	ProductID uuid.UUID       `json:"product_id"`
	Delta     decimal.Decimal `json:"delta"`
}

// PurchaseGoodsReceivedEvent is published when goods are received and stock deltas credited
type PurchaseGoodsReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseNumber string              `json:"purchase_number"`
	Deltas         []ReceivedDeltaInfo `json:"deltas"`
	Status         PurchaseStatus      `json:"status"`
}

// NewPurchaseGoodsReceivedEvent creates a new PurchaseGoodsReceivedEvent
func NewPurchaseGoodsReceivedEvent(p *Purchase, deltas []ReceivedDelta) *PurchaseGoodsReceivedEvent {
	infos := make([]ReceivedDeltaInfo, 0, len(deltas))
	for _, d := range deltas {
		infos = append(infos, ReceivedDeltaInfo{ProductID: d.ProductID, Delta: d.Delta})
	}
	return &PurchaseGoodsReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase.goods_received", "Purchase", p.ID),
		PurchaseNumber:  p.PurchaseNumber,
		Deltas:          infos,
		Status:          p.Status,
	}
}

// PurchaseCompletedEvent is published when every ordered quantity has been received
type PurchaseCompletedEvent struct {
	shared.BaseDomainEvent
	PurchaseNumber string          `json:"purchase_number"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewPurchaseCompletedEvent creates a new PurchaseCompletedEvent
func NewPurchaseCompletedEvent(p *Purchase) *PurchaseCompletedEvent {
	return &PurchaseCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase.completed", "Purchase", p.ID),
		PurchaseNumber:  p.PurchaseNumber,
		TotalAmount:     p.TotalAmount,
	}
}

// PurchaseCancelledEvent is published when a purchase is cancelled
type PurchaseCancelledEvent struct {
	shared.BaseDomainEvent
	PurchaseNumber string `json:"purchase_number"`
	Reason         string `json:"reason"`
}

// NewPurchaseCancelledEvent creates a new PurchaseCancelledEvent
func NewPurchaseCancelledEvent(p *Purchase) *PurchaseCancelledEvent {
	return &PurchaseCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase.cancelled", "Purchase", p.ID),
		PurchaseNumber:  p.PurchaseNumber,
		Reason:          p.CancelReason,
	}
}
