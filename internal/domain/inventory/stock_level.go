package inventory

import (
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel tracks the on-hand quantity of a product, optionally per branch.
// Quantities are adjusted only through atomic database increments; the struct
// is a read model and carries no mutation methods that touch Quantity.
type StockLevel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_branch,priority:1"`
	BranchID  *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_stock_product_branch,priority:2"` // Nil for central stock
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a zero-quantity stock record for a product
func NewStockLevel(productID uuid.UUID, branchID *uuid.UUID) (*StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	now := time.Now()
	return &StockLevel{
		ID:        uuid.New(),
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsAvailable returns true if at least the given quantity is on hand
func (s *StockLevel) IsAvailable(quantity decimal.Decimal) bool {
	return s.Quantity.GreaterThanOrEqual(quantity)
}

// ProductStock is the per-product total across all locations. It moves in
// lockstep with the per-branch levels: every adjustment increments both
// counters inside one transaction, so the total never needs to be summed.
type ProductStock struct {
	ProductID uuid.UUID       `gorm:"type:uuid;primary_key"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductStock) TableName() string {
	return "product_stock"
}

// NewProductStock creates a zero-quantity product total
func NewProductStock(productID uuid.UUID) (*ProductStock, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	now := time.Now()
	return &ProductStock{
		ProductID: productID,
		Quantity:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
