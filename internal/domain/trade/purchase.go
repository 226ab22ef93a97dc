package trade

import (
	"fmt"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending           PurchaseStatus = "PENDING"
	PurchaseStatusPartiallyReceived PurchaseStatus = "PARTIALLY_RECEIVED"
	PurchaseStatusCompleted         PurchaseStatus = "COMPLETED"
	PurchaseStatusCancelled         PurchaseStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusPartiallyReceived,
		PurchaseStatusCompleted, PurchaseStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	switch s {
	case PurchaseStatusPending:
		return target == PurchaseStatusPartiallyReceived || target == PurchaseStatusCompleted || target == PurchaseStatusCancelled
	case PurchaseStatusPartiallyReceived:
		return target == PurchaseStatusPartiallyReceived || target == PurchaseStatusCompleted || target == PurchaseStatusCancelled
	case PurchaseStatusCompleted, PurchaseStatusCancelled:
		return false // Terminal states
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseStatus) CanReceive() bool {
	return s == PurchaseStatusPending || s == PurchaseStatusPartiallyReceived
}

// IsTerminal returns true for terminal states
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusCompleted || s == PurchaseStatusCancelled
}

// PurchaseItem represents a line item in a purchase
type PurchaseItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	ProductCode      string          `gorm:"type:varchar(50);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity ordered
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Cumulative quantity received so far
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Cost per unit
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"` // OrderedQuantity * UnitCost
	Remark           string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a new purchase line item
func NewPurchaseItem(purchaseID, productID uuid.UUID, productName, productCode string, quantity decimal.Decimal, unitCost valueobject.Money) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseItem{
		ID:               uuid.New(),
		PurchaseID:       purchaseID,
		ProductID:        productID,
		ProductName:      productName,
		ProductCode:      productCode,
		OrderedQuantity:  quantity,
		ReceivedQuantity: decimal.Zero,
		UnitCost:         unitCost.Amount(),
		Amount:           quantity.Mul(unitCost.Amount()),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UpdateQuantity updates the ordered quantity and recalculates the amount
func (i *PurchaseItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity.LessThan(i.ReceivedQuantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be less than received quantity")
	}

	i.OrderedQuantity = quantity
	i.Amount = quantity.Mul(i.UnitCost)
	i.UpdatedAt = time.Now()

	return nil
}

// RemainingQuantity returns the quantity still to be received
func (i *PurchaseItem) RemainingQuantity() decimal.Decimal {
	remaining := i.OrderedQuantity.Sub(i.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// setReceivedQuantity moves the cumulative received quantity to the given
// absolute value and returns the positive delta. A value below the current
// cumulative quantity means the caller is trying to un-receive goods, which
// is not a receiving operation.
func (i *PurchaseItem) setReceivedQuantity(newReceived decimal.Decimal) (decimal.Decimal, error) {
	if newReceived.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
	}
	if newReceived.LessThan(i.ReceivedQuantity) {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Received quantity %s is below already-received %s; receiving cannot be reduced", newReceived.String(), i.ReceivedQuantity.String()))
	}
	if newReceived.GreaterThan(i.OrderedQuantity) {
		return decimal.Zero, shared.NewDomainError("QUANTITY_EXCEEDED", fmt.Sprintf("Cannot receive %s, only %s ordered", newReceived.String(), i.OrderedQuantity.String()))
	}

	delta := newReceived.Sub(i.ReceivedQuantity)
	i.ReceivedQuantity = newReceived
	i.UpdatedAt = time.Now()

	return delta, nil
}

// GetUnitCostMoney returns the unit cost as Money value object
func (i *PurchaseItem) GetUnitCostMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(i.UnitCost)
}

// ReceiveItem reports the cumulative received quantity for one product.
// Quantities are absolute: the caller states how much has been received in
// total, and the aggregate works out the delta against the stored value.
type ReceiveItem struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// ReceivedDelta is the stock effect of one receiving line: the positive
// quantity to credit to inventory for the product. Zero-delta lines are
// omitted so re-submitting the same cumulative quantities credits nothing.
type ReceivedDelta struct {
	ProductID   uuid.UUID
	ProductName string
	Delta       decimal.Decimal
	UnitCost    decimal.Decimal
}

// Purchase represents a purchase aggregate root: an order placed with a
// supplier and tracked through receiving until all goods have arrived.
type Purchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName   string          `gorm:"type:varchar(200);not null"`
	BranchID       *uuid.UUID      `gorm:"type:uuid;index"` // Receiving branch, nil for central stock
	Items          []PurchaseItem  `gorm:"foreignKey:PurchaseID;references:ID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Sum of line amounts
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Subtotal + TaxAmount
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Remark         string          `gorm:"type:text"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase in PENDING status
func NewPurchase(purchaseNumber string, supplierID uuid.UUID, supplierName string, branchID *uuid.UUID) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if len(purchaseNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	purchase := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		BranchID:          branchID,
		Items:             make([]PurchaseItem, 0),
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		Status:            PurchaseStatusPending,
	}

	purchase.AddDomainEvent(NewPurchaseCreatedEvent(purchase))

	return purchase, nil
}

// AddItem adds a line item to a pending purchase
func (p *Purchase) AddItem(productID uuid.UUID, productName, productCode string, quantity decimal.Decimal, unitCost valueobject.Money) (*PurchaseItem, error) {
	if p.Status != PurchaseStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to purchase in %s status", p.Status))
	}
	if idx := p.findItemByProduct(productID); idx >= 0 {
		return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in purchase")
	}

	item, err := NewPurchaseItem(p.ID, productID, productName, productCode, quantity, unitCost)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.recalculateTotal()
	p.Touch()
	p.IncrementVersion()

	return item, nil
}

// UpdateItemQuantity updates the ordered quantity of a pending line item
func (p *Purchase) UpdateItemQuantity(productID uuid.UUID, quantity decimal.Decimal) error {
	if p.Status != PurchaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify items of purchase in %s status", p.Status))
	}
	idx := p.findItemByProduct(productID)
	if idx < 0 {
		return shared.NewDomainError("NOT_FOUND", "Product not found in purchase")
	}

	if err := p.Items[idx].UpdateQuantity(quantity); err != nil {
		return err
	}

	p.recalculateTotal()
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RemoveItem removes a line item from a pending purchase
func (p *Purchase) RemoveItem(productID uuid.UUID) error {
	if p.Status != PurchaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove items from purchase in %s status", p.Status))
	}
	if p.hasReceivedGoods() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items after goods were received")
	}
	idx := p.findItemByProduct(productID)
	if idx < 0 {
		return shared.NewDomainError("NOT_FOUND", "Product not found in purchase")
	}

	p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
	p.recalculateTotal()
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetTaxAmount sets the tax added on top of the line subtotal
func (p *Purchase) SetTaxAmount(tax decimal.Decimal) error {
	if p.Status != PurchaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change tax of purchase in %s status", p.Status))
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Tax amount cannot be negative")
	}

	p.TaxAmount = tax
	p.recalculateTotal()
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RecordPayment adds to the amount already paid to the supplier. Payments
// beyond the purchase total are rejected.
func (p *Purchase) RecordPayment(amount decimal.Decimal) error {
	if p.Status == PurchaseStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled purchase")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	newPaid := p.PaidAmount.Add(amount)
	if newPaid.GreaterThan(p.TotalAmount) {
		return shared.NewDomainError("OVERPAYMENT", fmt.Sprintf("Payment would exceed purchase total %s", p.TotalAmount.String()))
	}

	p.PaidAmount = newPaid
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsFullyPaid returns true when the paid amount covers the total
func (p *Purchase) IsFullyPaid() bool {
	return p.PaidAmount.GreaterThanOrEqual(p.TotalAmount)
}

// OutstandingAmount returns the amount still owed to the supplier
func (p *Purchase) OutstandingAmount() decimal.Decimal {
	outstanding := p.TotalAmount.Sub(p.PaidAmount)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// ReceiveItems records cumulative received quantities and returns the
// positive stock deltas to credit. Validation is all-or-nothing: any bad
// line leaves the aggregate untouched, so a failed call never credits stock.
func (p *Purchase) ReceiveItems(receiveItems []ReceiveItem) ([]ReceivedDelta, error) {
	if !p.Status.CanReceive() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive goods for purchase in %s status", p.Status))
	}
	if len(receiveItems) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Receive items cannot be empty")
	}

	// Validate every line before mutating anything
	seen := make(map[uuid.UUID]bool, len(receiveItems))
	for _, ri := range receiveItems {
		if seen[ri.ProductID] {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", fmt.Sprintf("Product %s appears more than once", ri.ProductID))
		}
		seen[ri.ProductID] = true

		idx := p.findItemByProduct(ri.ProductID)
		if idx < 0 {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found in purchase", ri.ProductID))
		}
		item := &p.Items[idx]
		if ri.ReceivedQuantity.IsNegative() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
		}
		if ri.ReceivedQuantity.LessThan(item.ReceivedQuantity) {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Received quantity %s for product %s is below already-received %s", ri.ReceivedQuantity.String(), ri.ProductID, item.ReceivedQuantity.String()))
		}
		if ri.ReceivedQuantity.GreaterThan(item.OrderedQuantity) {
			return nil, shared.NewDomainError("QUANTITY_EXCEEDED", fmt.Sprintf("Received quantity %s for product %s exceeds ordered %s", ri.ReceivedQuantity.String(), ri.ProductID, item.OrderedQuantity.String()))
		}
	}

	deltas := make([]ReceivedDelta, 0, len(receiveItems))
	for _, ri := range receiveItems {
		idx := p.findItemByProduct(ri.ProductID)
		item := &p.Items[idx]

		delta, err := item.setReceivedQuantity(ri.ReceivedQuantity)
		if err != nil {
			return nil, err
		}
		if delta.IsPositive() {
			deltas = append(deltas, ReceivedDelta{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Delta:       delta,
				UnitCost:    item.UnitCost,
			})
		}
	}

	p.deriveReceivingStatus()

	if len(deltas) > 0 {
		p.AddDomainEvent(NewPurchaseGoodsReceivedEvent(p, deltas))
	}

	p.Touch()
	p.IncrementVersion()

	return deltas, nil
}

// Complete force-receives every outstanding quantity and returns the stock
// deltas for what had not arrived yet. The purchase ends up COMPLETED with
// every line fully received.
func (p *Purchase) Complete() ([]ReceivedDelta, error) {
	if !p.Status.CanTransitionTo(PurchaseStatusCompleted) {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete purchase in %s status", p.Status))
	}
	if len(p.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Cannot complete a purchase without items")
	}

	deltas := make([]ReceivedDelta, 0, len(p.Items))
	for idx := range p.Items {
		item := &p.Items[idx]
		delta, err := item.setReceivedQuantity(item.OrderedQuantity)
		if err != nil {
			return nil, err
		}
		if delta.IsPositive() {
			deltas = append(deltas, ReceivedDelta{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Delta:       delta,
				UnitCost:    item.UnitCost,
			})
		}
	}

	now := time.Now()
	p.Status = PurchaseStatusCompleted
	p.CompletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseCompletedEvent(p))
	if len(deltas) > 0 {
		p.AddDomainEvent(NewPurchaseGoodsReceivedEvent(p, deltas))
	}

	return deltas, nil
}

// Cancel cancels the purchase. A completed purchase is part of the books
// and can no longer be cancelled.
func (p *Purchase) Cancel(reason string) error {
	if !p.Status.CanTransitionTo(PurchaseStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase in %s status", p.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	p.Status = PurchaseStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseCancelledEvent(p))

	return nil
}

// CanRemove returns an error when the purchase must be kept. A completed
// purchase already credited stock and cannot be removed.
func (p *Purchase) CanRemove() error {
	if p.Status == PurchaseStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove a completed purchase")
	}
	return nil
}

// SetRemark sets the remark
func (p *Purchase) SetRemark(remark string) {
	p.Remark = remark
	p.Touch()
	p.IncrementVersion()
}

// GetTotalAmountMoney returns the total amount as Money value object
func (p *Purchase) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(p.TotalAmount)
}

// GetItem returns a line item by product ID
func (p *Purchase) GetItem(productID uuid.UUID) *PurchaseItem {
	idx := p.findItemByProduct(productID)
	if idx < 0 {
		return nil
	}
	return &p.Items[idx]
}

// GetItemByID returns a line item by its ID
func (p *Purchase) GetItemByID(itemID uuid.UUID) *PurchaseItem {
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			return &p.Items[idx]
		}
	}
	return nil
}

func (p *Purchase) findItemByProduct(productID uuid.UUID) int {
	for idx := range p.Items {
		if p.Items[idx].ProductID == productID {
			return idx
		}
	}
	return -1
}

func (p *Purchase) recalculateTotal() {
	subtotal := decimal.Zero
	for idx := range p.Items {
		subtotal = subtotal.Add(p.Items[idx].Amount)
	}
	p.Subtotal = subtotal
	p.TotalAmount = subtotal.Add(p.TaxAmount)
}

// deriveReceivingStatus re-asserts the header status from the line items:
// COMPLETED when every line is fully received, PARTIALLY_RECEIVED when any
// goods have arrived, otherwise the status stays as it was.
func (p *Purchase) deriveReceivingStatus() {
	if p.isAllItemsReceived() {
		now := time.Now()
		p.Status = PurchaseStatusCompleted
		p.CompletedAt = &now
		p.AddDomainEvent(NewPurchaseCompletedEvent(p))
		return
	}
	if p.hasReceivedGoods() {
		p.Status = PurchaseStatusPartiallyReceived
	}
}

func (p *Purchase) isAllItemsReceived() bool {
	for idx := range p.Items {
		if !p.Items[idx].IsFullyReceived() {
			return false
		}
	}
	return len(p.Items) > 0
}

func (p *Purchase) hasReceivedGoods() bool {
	for idx := range p.Items {
		if p.Items[idx].ReceivedQuantity.IsPositive() {
			return true
		}
	}
	return false
}
