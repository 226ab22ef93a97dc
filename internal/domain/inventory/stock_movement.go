package inventory

import (
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies why stock changed
type MovementType string

const (
	MovementTypePurchaseReceipt MovementType = "PURCHASE_RECEIPT" // Goods received from a supplier
	MovementTypeReturnRestock   MovementType = "RETURN_RESTOCK"   // Customer return put back on the shelf
	MovementTypeSupplierReturn  MovementType = "SUPPLIER_RETURN"  // Goods shipped back to a supplier
	MovementTypeSale            MovementType = "SALE"             // Sold at the counter
	MovementTypeManual          MovementType = "MANUAL"           // Stock take correction
)

// IsValid checks if the type is a valid MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchaseReceipt, MovementTypeReturnRestock, MovementTypeSupplierReturn, MovementTypeSale, MovementTypeManual:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// StockMovement is the audit trail of a single stock adjustment.
// Movements are append-only; Quantity carries the sign of the change.
type StockMovement struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID   *uuid.UUID      `gorm:"type:uuid;index"`
	Type       MovementType    `gorm:"type:varchar(30);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed delta
	SourceType string          `gorm:"type:varchar(30)"`            // Source document kind (Purchase, Return, ...)
	SourceID   *uuid.UUID      `gorm:"type:uuid;index"`             // Source document ID
	Remark     string          `gorm:"type:varchar(500)"`
	CreatedAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement record for a stock adjustment
func NewStockMovement(productID uuid.UUID, branchID *uuid.UUID, movementType MovementType, quantity decimal.Decimal, sourceType string, sourceID *uuid.UUID, remark string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type is not valid")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}

	return &StockMovement{
		ID:         uuid.New(),
		ProductID:  productID,
		BranchID:   branchID,
		Type:       movementType,
		Quantity:   quantity,
		SourceType: sourceType,
		SourceID:   sourceID,
		Remark:     remark,
		CreatedAt:  time.Now(),
	}, nil
}
