package trade

import (
	"time"

	"github.com/goldsmith/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePurchaseItemRequest is one line of a purchase creation request
type CreatePurchaseItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,max=200"`
	ProductCode string          `json:"product_code" binding:"max=50"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseRequest is the request to create a purchase. A purchase
// paid in full up front, or created with an explicit COMPLETED status, is
// received immediately: stock is credited for every line on creation.
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID                   `json:"supplier_id" binding:"required"`
	SupplierName string                      `json:"supplier_name" binding:"required,max=200"`
	BranchID     *uuid.UUID                  `json:"branch_id"`
	Items        []CreatePurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxAmount    decimal.Decimal             `json:"tax_amount"`
	PaidAmount   decimal.Decimal             `json:"paid_amount"`
	Status       *string                     `json:"status" binding:"omitempty,oneof=PENDING COMPLETED"`
	Remark       string                      `json:"remark" binding:"max=500"`
}

// ReceiveItemRequest reports the cumulative received quantity for one product
type ReceiveItemRequest struct {
	ProductID        uuid.UUID       `json:"product_id" binding:"required"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// ReceivePurchaseRequest is the request to record received goods
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CancelPurchaseRequest is the request to cancel a purchase
type CancelPurchaseRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// PurchaseListFilter carries purchase list query parameters
type PurchaseListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     *string    `form:"status"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Search     string     `form:"search"`
}

// PurchaseItemResponse is the API representation of a purchase line
type PurchaseItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductCode       string          `json:"product_code"`
	OrderedQuantity   decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Amount            decimal.Decimal `json:"amount"`
}

// PurchaseResponse is the API representation of a purchase
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	SupplierName   string                 `json:"supplier_name"`
	BranchID       *uuid.UUID             `json:"branch_id,omitempty"`
	Items          []PurchaseItemResponse `json:"items"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	PaidAmount     decimal.Decimal        `json:"paid_amount"`
	Status         string                 `json:"status"`
	Remark         string                 `json:"remark,omitempty"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// CreditedDeltaResponse reports one stock credit from a receiving operation
type CreditedDeltaResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Delta       decimal.Decimal `json:"delta"`
}

// ReceiveResultResponse reports the outcome of a receiving operation
type ReceiveResultResponse struct {
	Purchase        *PurchaseResponse       `json:"purchase"`
	CreditedDeltas  []CreditedDeltaResponse `json:"credited_deltas"`
	IsFullyReceived bool                    `json:"is_fully_received"`
}

// ToPurchaseResponse converts a domain purchase to its API representation
func ToPurchaseResponse(p *trade.Purchase) *PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		items[i] = PurchaseItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			ProductCode:       item.ProductCode,
			OrderedQuantity:   item.OrderedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			UnitCost:          item.UnitCost,
			Amount:            item.Amount,
		}
	}
	return &PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		BranchID:       p.BranchID,
		Items:          items,
		Subtotal:       p.Subtotal,
		TaxAmount:      p.TaxAmount,
		TotalAmount:    p.TotalAmount,
		PaidAmount:     p.PaidAmount,
		Status:         p.Status.String(),
		Remark:         p.Remark,
		CompletedAt:    p.CompletedAt,
		CancelledAt:    p.CancelledAt,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// CreateReturnItemRequest is one line of a return creation request. The
// source item is the original sale or purchase line being returned against.
type CreateReturnItemRequest struct {
	SourceItemID   uuid.UUID       `json:"source_item_id" binding:"required"`
	ReturnQuantity decimal.Decimal `json:"return_quantity" binding:"required"`
	Restock        *bool           `json:"restock"` // Customer returns only, defaults to true
}

// CreateReturnRequest is the request to file a return. Exactly one of
// sale_id and purchase_id must be set, matching the type.
type CreateReturnRequest struct {
	Type       string                    `json:"type" binding:"required,oneof=CUSTOMER_RETURN SUPPLIER_RETURN"`
	SaleID     *uuid.UUID                `json:"sale_id"`
	PurchaseID *uuid.UUID                `json:"purchase_id"`
	Reason     string                    `json:"reason" binding:"required,max=500"`
	Items      []CreateReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ApproveReturnRequest is the request to approve a pending return
type ApproveReturnRequest struct {
	ApproverID uuid.UUID `json:"approver_id" binding:"required"`
	Note       string    `json:"note" binding:"max=500"`
}

// RejectReturnRequest is the request to reject a pending return
type RejectReturnRequest struct {
	RejecterID uuid.UUID `json:"rejecter_id" binding:"required"`
	Reason     string    `json:"reason" binding:"required,max=500"`
}

// CompleteReturnRequest is the request to complete an approved return.
// A refund account posts the refund as a withdrawal; without one the refund
// is assumed paid from the till.
type CompleteReturnRequest struct {
	RefundAccountID *uuid.UUID `json:"refund_account_id"`
}

// ReturnListFilter carries return list query parameters
type ReturnListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Type       *string    `form:"type"`
	SaleID     *uuid.UUID `form:"sale_id"`
	PurchaseID *uuid.UUID `form:"purchase_id"`
	CustomerID *uuid.UUID `form:"customer_id"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     *string    `form:"status"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
}

// ReturnItemResponse is the API representation of a return line
type ReturnItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	SourceItemID   uuid.UUID       `json:"source_item_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ReturnQuantity decimal.Decimal `json:"return_quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	Restock        bool            `json:"restock"`
}

// ReturnResponse is the API representation of a return
type ReturnResponse struct {
	ID              uuid.UUID            `json:"id"`
	ReturnNumber    string               `json:"return_number"`
	Type            string               `json:"type"`
	SaleID          *uuid.UUID           `json:"sale_id,omitempty"`
	SaleNumber      string               `json:"sale_number,omitempty"`
	CustomerID      *uuid.UUID           `json:"customer_id,omitempty"`
	CustomerName    string               `json:"customer_name,omitempty"`
	PurchaseID      *uuid.UUID           `json:"purchase_id,omitempty"`
	PurchaseNumber  string               `json:"purchase_number,omitempty"`
	SupplierID      *uuid.UUID           `json:"supplier_id,omitempty"`
	SupplierName    string               `json:"supplier_name,omitempty"`
	Items           []ReturnItemResponse `json:"items"`
	TotalRefund     decimal.Decimal      `json:"total_refund"`
	Status          string               `json:"status"`
	Reason          string               `json:"reason"`
	ApprovedAt      *time.Time           `json:"approved_at,omitempty"`
	ApprovalNote    string               `json:"approval_note,omitempty"`
	RejectedAt      *time.Time           `json:"rejected_at,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	CompletedAt     *time.Time           `json:"completed_at,omitempty"`
	Version         int                  `json:"version"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ToReturnResponse converts a domain return to its API representation
func ToReturnResponse(r *trade.Return) *ReturnResponse {
	items := make([]ReturnItemResponse, len(r.Items))
	for i := range r.Items {
		item := &r.Items[i]
		items[i] = ReturnItemResponse{
			ID:             item.ID,
			SourceItemID:   item.SourceItemID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			ReturnQuantity: item.ReturnQuantity,
			UnitPrice:      item.UnitPrice,
			RefundAmount:   item.RefundAmount,
			Restock:        item.Restock,
		}
	}
	return &ReturnResponse{
		ID:              r.ID,
		ReturnNumber:    r.ReturnNumber,
		Type:            r.Type.String(),
		SaleID:          r.SaleID,
		SaleNumber:      r.SaleNumber,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		PurchaseID:      r.PurchaseID,
		PurchaseNumber:  r.PurchaseNumber,
		SupplierID:      r.SupplierID,
		SupplierName:    r.SupplierName,
		Items:           items,
		TotalRefund:     r.TotalRefund,
		Status:          r.Status.String(),
		Reason:          r.Reason,
		ApprovedAt:      r.ApprovedAt,
		ApprovalNote:    r.ApprovalNote,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
		CompletedAt:     r.CompletedAt,
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
