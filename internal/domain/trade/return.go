package trade

import (
	"fmt"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnType distinguishes who the goods move between
type ReturnType string

const (
	ReturnTypeCustomer ReturnType = "CUSTOMER_RETURN" // Customer brings goods back, stock goes up
	ReturnTypeSupplier ReturnType = "SUPPLIER_RETURN" // Goods shipped back to a supplier, stock goes down
)

// IsValid checks if the type is a valid ReturnType
func (t ReturnType) IsValid() bool {
	return t == ReturnTypeCustomer || t == ReturnTypeSupplier
}

// String returns the string representation of ReturnType
func (t ReturnType) String() string {
	return string(t)
}

// ReturnStatus represents the status of a return
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "PENDING"   // Waiting for approval
	ReturnStatusApproved  ReturnStatus = "APPROVED"  // Approved, awaiting goods movement
	ReturnStatusRejected  ReturnStatus = "REJECTED"  // Rejected by approver
	ReturnStatusCompleted ReturnStatus = "COMPLETED" // Goods moved, refund settled
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	switch s {
	case ReturnStatusPending:
		return target == ReturnStatusApproved || target == ReturnStatusRejected
	case ReturnStatusApproved:
		return target == ReturnStatusCompleted
	case ReturnStatusRejected, ReturnStatusCompleted:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for terminal states
func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnStatusRejected || s == ReturnStatusCompleted
}

// ReturnItem represents a line item in a return. It always points back at
// the original document line: a sale item for customer returns, a purchase
// item for supplier returns.
type ReturnItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceItemID   uuid.UUID       `gorm:"type:uuid;not null"` // Original sale or purchase line
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	ProductCode    string          `gorm:"type:varchar(50);not null"`
	SourceQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity still claimable on the original line
	ReturnQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity being returned
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Sale price or purchase cost per unit
	RefundAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // ReturnQuantity * UnitPrice
	Restock        bool            `gorm:"not null;default:true"`       // False for damaged goods that cannot go back on the shelf
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItem) TableName() string {
	return "return_items"
}

// NewReturnItem creates a new return line item
func NewReturnItem(returnID, sourceItemID, productID uuid.UUID, productName, productCode string, sourceQuantity, returnQuantity decimal.Decimal, unitPrice valueobject.Money, restock bool) (*ReturnItem, error) {
	if sourceItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE_ITEM", "Source item ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if returnQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if returnQuantity.GreaterThan(sourceQuantity) {
		return nil, shared.NewDomainError("QUANTITY_EXCEEDED", fmt.Sprintf("Cannot return %s, only %s available", returnQuantity.String(), sourceQuantity.String()))
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &ReturnItem{
		ID:             uuid.New(),
		ReturnID:       returnID,
		SourceItemID:   sourceItemID,
		ProductID:      productID,
		ProductName:    productName,
		ProductCode:    productCode,
		SourceQuantity: sourceQuantity,
		ReturnQuantity: returnQuantity,
		UnitPrice:      unitPrice.Amount(),
		RefundAmount:   returnQuantity.Mul(unitPrice.Amount()),
		Restock:        restock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// StockDelta is the inventory effect of completing a return. The sign
// carries the direction: positive for customer goods coming back in,
// negative for goods shipped back to a supplier.
type StockDelta struct {
	ProductID   uuid.UUID
	ProductName string
	Delta       decimal.Decimal
}

// Return represents a return aggregate root. A customer return reverses a
// sale; a supplier return reverses a purchase. It is created PENDING and
// moves through approval to completion; the inventory effect applies only
// at completion, so a rejected return leaves no trace on stock.
type Return struct {
	shared.BaseAggregateRoot
	ReturnNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type            ReturnType      `gorm:"type:varchar(20);not null;index"`
	SaleID          *uuid.UUID      `gorm:"type:uuid;index"` // Original sale, customer returns only
	SaleNumber      string          `gorm:"type:varchar(50)"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName    string          `gorm:"type:varchar(200)"`
	PurchaseID      *uuid.UUID      `gorm:"type:uuid;index"` // Original purchase, supplier returns only
	PurchaseNumber  string          `gorm:"type:varchar(50)"`
	SupplierID      *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierName    string          `gorm:"type:varchar(200)"`
	BranchID        *uuid.UUID      `gorm:"type:uuid;index"` // Branch whose stock moves, nil for central stock
	Items           []ReturnItem    `gorm:"foreignKey:ReturnID;references:ID"`
	TotalRefund     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status          ReturnStatus    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Reason          string          `gorm:"type:varchar(500);not null"`
	ApprovedAt      *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovalNote    string     `gorm:"type:varchar(500)"`
	RejectedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason string     `gorm:"type:varchar(500)"`
	CompletedAt     *time.Time
}

// TableName returns the table name for GORM
func (Return) TableName() string {
	return "returns"
}

// NewCustomerReturn creates a return filed against a sale, in PENDING status
func NewCustomerReturn(returnNumber string, saleID uuid.UUID, saleNumber string, customerID uuid.UUID, customerName, reason string, branchID *uuid.UUID) (*Return, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	ret, err := newReturn(returnNumber, ReturnTypeCustomer, reason, branchID)
	if err != nil {
		return nil, err
	}
	ret.SaleID = &saleID
	ret.SaleNumber = saleNumber
	ret.CustomerID = &customerID
	ret.CustomerName = customerName

	ret.AddDomainEvent(NewReturnRequestedEvent(ret))

	return ret, nil
}

// NewSupplierReturn creates a return shipping goods back to a supplier, in PENDING status
func NewSupplierReturn(returnNumber string, purchaseID uuid.UUID, purchaseNumber string, supplierID uuid.UUID, supplierName, reason string, branchID *uuid.UUID) (*Return, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	ret, err := newReturn(returnNumber, ReturnTypeSupplier, reason, branchID)
	if err != nil {
		return nil, err
	}
	ret.PurchaseID = &purchaseID
	ret.PurchaseNumber = purchaseNumber
	ret.SupplierID = &supplierID
	ret.SupplierName = supplierName

	ret.AddDomainEvent(NewReturnRequestedEvent(ret))

	return ret, nil
}

func newReturn(returnNumber string, returnType ReturnType, reason string, branchID *uuid.UUID) (*Return, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if len(returnNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot exceed 50 characters")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Return reason is required")
	}

	return &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		Type:              returnType,
		BranchID:          branchID,
		Items:             make([]ReturnItem, 0),
		TotalRefund:       decimal.Zero,
		Status:            ReturnStatusPending,
		Reason:            reason,
	}, nil
}

// AddItem adds a line item to a pending return
func (r *Return) AddItem(sourceItemID, productID uuid.UUID, productName, productCode string, sourceQuantity, returnQuantity decimal.Decimal, unitPrice valueobject.Money, restock bool) (*ReturnItem, error) {
	if r.Status != ReturnStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to return in %s status", r.Status))
	}
	for idx := range r.Items {
		if r.Items[idx].SourceItemID == sourceItemID {
			return nil, shared.NewDomainError("DUPLICATE_SOURCE_ITEM", "Source item already included in return")
		}
	}

	item, err := NewReturnItem(r.ID, sourceItemID, productID, productName, productCode, sourceQuantity, returnQuantity, unitPrice, restock)
	if err != nil {
		return nil, err
	}

	r.Items = append(r.Items, *item)
	r.recalculateTotalRefund()
	r.Touch()
	r.IncrementVersion()

	return item, nil
}

// Approve approves a pending return
func (r *Return) Approve(approverID uuid.UUID, note string) error {
	if !r.Status.CanTransitionTo(ReturnStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve return in %s status", r.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("EMPTY_RETURN", "Cannot approve a return without items")
	}

	now := time.Now()
	r.Status = ReturnStatusApproved
	r.ApprovedAt = &now
	r.ApprovedBy = &approverID
	r.ApprovalNote = note
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReturnApprovedEvent(r))

	return nil
}

// Reject rejects a pending return. Rejected returns have no inventory or money effects.
func (r *Return) Reject(rejecterID uuid.UUID, reason string) error {
	if !r.Status.CanTransitionTo(ReturnStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject return in %s status", r.Status))
	}
	if rejecterID == uuid.Nil {
		return shared.NewDomainError("INVALID_REJECTER", "Rejecter ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	r.Status = ReturnStatusRejected
	r.RejectedAt = &now
	r.RejectedBy = &rejecterID
	r.RejectionReason = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReturnRejectedEvent(r))

	return nil
}

// Complete finalizes an approved return and returns the signed stock deltas.
// Customer returns credit stock, except for lines flagged as non-restockable;
// supplier returns debit stock for every line, the goods leave the building.
// COMPLETED is reachable only from APPROVED and only once, so the deltas are
// handed out exactly once per return.
func (r *Return) Complete() ([]StockDelta, error) {
	if !r.Status.CanTransitionTo(ReturnStatusCompleted) {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete return in %s status", r.Status))
	}

	deltas := make([]StockDelta, 0, len(r.Items))
	for idx := range r.Items {
		item := &r.Items[idx]
		switch r.Type {
		case ReturnTypeCustomer:
			if !item.Restock {
				continue
			}
			deltas = append(deltas, StockDelta{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Delta:       item.ReturnQuantity,
			})
		case ReturnTypeSupplier:
			deltas = append(deltas, StockDelta{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Delta:       item.ReturnQuantity.Neg(),
			})
		}
	}

	now := time.Now()
	r.Status = ReturnStatusCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReturnCompletedEvent(r, deltas))

	return deltas, nil
}

// CanRemove returns an error when the return must be kept. A completed
// return already moved stock and money and is part of the books.
func (r *Return) CanRemove() error {
	if r.Status == ReturnStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove a completed return")
	}
	return nil
}

// GetTotalRefundMoney returns the total refund as Money value object
func (r *Return) GetTotalRefundMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(r.TotalRefund)
}

// TotalReturnQuantity returns the total quantity being returned
func (r *Return) TotalReturnQuantity() decimal.Decimal {
	total := decimal.Zero
	for idx := range r.Items {
		total = total.Add(r.Items[idx].ReturnQuantity)
	}
	return total
}

func (r *Return) recalculateTotalRefund() {
	total := decimal.Zero
	for idx := range r.Items {
		total = total.Add(r.Items[idx].RefundAmount)
	}
	r.TotalRefund = total
}
