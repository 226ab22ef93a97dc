package inventory

import (
	"context"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adjuster is the domain service every stock-changing workflow goes through.
// It pairs the atomic quantity increment with a movement record so the audit
// trail always accounts for the level. Callers run it inside their own
// transaction scope; a failed increment records nothing.
type Adjuster struct {
	stockRepo StockRepository
}

// NewAdjuster creates a new stock adjuster
func NewAdjuster(stockRepo StockRepository) *Adjuster {
	return &Adjuster{stockRepo: stockRepo}
}

// Credit increases stock by the given positive quantity
func (a *Adjuster) Credit(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, quantity decimal.Decimal, movementType MovementType, sourceType string, sourceID *uuid.UUID, remark string) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Credit quantity must be positive")
	}
	return a.apply(ctx, productID, branchID, quantity, movementType, sourceType, sourceID, remark)
}

// Debit decreases stock by the given positive quantity. Fails with
// INSUFFICIENT_STOCK when not enough is on hand.
func (a *Adjuster) Debit(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, quantity decimal.Decimal, movementType MovementType, sourceType string, sourceID *uuid.UUID, remark string) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Debit quantity must be positive")
	}
	return a.apply(ctx, productID, branchID, quantity.Neg(), movementType, sourceType, sourceID, remark)
}

func (a *Adjuster) apply(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, delta decimal.Decimal, movementType MovementType, sourceType string, sourceID *uuid.UUID, remark string) error {
	movement, err := NewStockMovement(productID, branchID, movementType, delta, sourceType, sourceID, remark)
	if err != nil {
		return err
	}

	if err := a.stockRepo.AdjustQuantity(ctx, productID, branchID, delta); err != nil {
		return err
	}

	// The product total moves by the same delta as the location level
	if err := a.stockRepo.AdjustProductQuantity(ctx, productID, delta); err != nil {
		return err
	}

	return a.stockRepo.RecordMovement(ctx, movement)
}
