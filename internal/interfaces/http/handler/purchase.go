package handler

import (
	tradeapp "github.com/goldsmith/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles purchase API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.List)
		purchases.POST("", h.Create)
		purchases.GET("/:id", h.Get)
		purchases.POST("/:id/receive", h.Receive)
		purchases.POST("/:id/complete", h.Complete)
		purchases.POST("/:id/cancel", h.Cancel)
		purchases.DELETE("/:id", h.Delete)
	}
}

// Create creates a purchase. A fully prepaid purchase completes on the
// spot and credits stock for every line
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// Get returns a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List lists purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter tradeapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.handleBindError(c, err)
		return
	}

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, purchases, total, page, pageSize)
}

// Complete force-receives everything still outstanding on a purchase
func (h *PurchaseHandler) Complete(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Receive records received goods. The request reports cumulative received
// quantities per product; only the computed positive deltas hit the stock,
// so replaying the same report credits nothing twice.
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.ReceivePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	result, err := h.purchaseService.Receive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels a purchase that has not been received
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.CancelPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	purchase, err := h.purchaseService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Delete removes a draft purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
