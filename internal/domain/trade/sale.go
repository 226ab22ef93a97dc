package trade

import (
	"fmt"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundStatus tracks how much of a sale has been refunded through returns
type RefundStatus string

const (
	RefundStatusNone    RefundStatus = "NONE"
	RefundStatusPartial RefundStatus = "PARTIAL"
	RefundStatusFull    RefundStatus = "REFUNDED"
)

// IsValid checks if the status is a valid RefundStatus
func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundStatusNone, RefundStatusPartial, RefundStatusFull:
		return true
	}
	return false
}

// SaleItem represents a line item in a completed sale
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductCode string          `gorm:"type:varchar(50);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// Sale represents a completed sale that returns can be filed against.
// Sales enter the system already settled at the counter; this aggregate
// exists to anchor returns and track cumulative refunds.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName   string          `gorm:"type:varchar(200);not null"`
	BranchID       *uuid.UUID      `gorm:"type:uuid;index"`
	Items          []SaleItem      `gorm:"foreignKey:SaleID;references:ID"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RefundedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RefundStatus   RefundStatus    `gorm:"type:varchar(20);not null;default:'NONE'"`
	SoldAt         time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale records a completed sale
func NewSale(saleNumber string, customerID uuid.UUID, customerName string, branchID *uuid.UUID, soldAt time.Time) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if soldAt.IsZero() {
		soldAt = time.Now()
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		BranchID:          branchID,
		Items:             make([]SaleItem, 0),
		TotalAmount:       decimal.Zero,
		RefundedAmount:    decimal.Zero,
		RefundStatus:      RefundStatusNone,
		SoldAt:            soldAt,
	}, nil
}

// AddItem adds a sold line item
func (s *Sale) AddItem(productID uuid.UUID, productName, productCode string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := SaleItem{
		ID:          uuid.New(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   time.Now(),
	}

	s.Items = append(s.Items, item)
	s.TotalAmount = s.TotalAmount.Add(item.Amount)
	s.Touch()
	s.IncrementVersion()

	return &s.Items[len(s.Items)-1], nil
}

// ApplyRefund records a refund issued through a completed return.
// Cumulative refunds can never exceed the sale total.
func (s *Sale) ApplyRefund(amount valueobject.Money) error {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}

	newRefunded := s.RefundedAmount.Add(amount.Amount())
	if newRefunded.GreaterThan(s.TotalAmount) {
		return shared.NewDomainError("OVERPAYMENT", fmt.Sprintf("Refund would exceed sale total %s", s.TotalAmount.String()))
	}

	s.RefundedAmount = newRefunded
	if newRefunded.GreaterThanOrEqual(s.TotalAmount) {
		s.RefundStatus = RefundStatusFull
	} else {
		s.RefundStatus = RefundStatusPartial
	}
	s.Touch()
	s.IncrementVersion()

	return nil
}

// GetItem returns a sold line item by ID
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// GetTotalAmountMoney returns the sale total as Money value object
func (s *Sale) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(s.TotalAmount)
}
