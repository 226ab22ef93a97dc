package inventory

import (
	"context"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementFilter defines filtering options for stock movement queries
type MovementFilter struct {
	shared.Filter
	ProductID  *uuid.UUID
	BranchID   *uuid.UUID
	Type       *MovementType
	SourceID   *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

// StockRepository defines the interface for stock persistence.
// AdjustQuantity must be implemented as a single atomic database increment
// (quantity = quantity + delta) so concurrent adjustments never lose updates.
type StockRepository interface {
	// GetStockLevel returns the stock record for a product at a branch,
	// creating a zero record if none exists
	GetStockLevel(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (*StockLevel, error)

	// FindByProduct returns all stock records for a product across branches
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockLevel, error)

	// AdjustQuantity applies a signed delta atomically. A negative delta that
	// would push the quantity below zero fails with INSUFFICIENT_STOCK and
	// leaves the record unchanged.
	AdjustQuantity(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, delta decimal.Decimal) error

	// AdjustProductQuantity applies the same signed delta to the product's
	// total across all locations, with the same atomic-increment contract.
	AdjustProductQuantity(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error

	// GetProductStock returns the product total, creating a zero record if
	// none exists
	GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStock, error)

	// RecordMovement appends a movement to the audit trail
	RecordMovement(ctx context.Context, movement *StockMovement) error

	// FindMovements lists movements with filtering
	FindMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, error)

	// SumMovements returns the signed movement sum for a product at a branch.
	// For a consistent store this equals the stock level quantity.
	SumMovements(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (decimal.Decimal, error)
}
