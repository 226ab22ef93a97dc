package handler

import (
	financeapp "github.com/goldsmith/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// PayableHandler handles account payable API endpoints
type PayableHandler struct {
	BaseHandler
	payableService *financeapp.PayableService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(payableService *financeapp.PayableService) *PayableHandler {
	return &PayableHandler{payableService: payableService}
}

// RegisterRoutes registers payable routes
func (h *PayableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payables := rg.Group("/payables")
	{
		payables.GET("", h.List)
		payables.POST("", h.Create)
		payables.GET("/:id", h.Get)
		payables.PUT("/:id", h.Update)
		payables.POST("/:id/pay", h.Pay)
		payables.POST("/:id/notes", h.AddNote)
		payables.DELETE("/:id", h.Remove)
	}
}

// Create creates a payable manually
func (h *PayableHandler) Create(c *gin.Context) {
	var req financeapp.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	payable, err := h.payableService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payable)
}

// Get returns a payable by ID
func (h *PayableHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	payable, err := h.payableService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// List lists payables
func (h *PayableHandler) List(c *gin.Context) {
	var filter financeapp.PayableListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.handleBindError(c, err)
		return
	}

	payables, total, err := h.payableService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, payables, total, page, pageSize)
}

// Update revises a payable's amount owed or due date
func (h *PayableHandler) Update(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.UpdatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	payable, err := h.payableService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// Pay applies a payment to a payable. A payment larger than the
// outstanding amount is rejected outright.
func (h *PayableHandler) Pay(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.PayPayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	payable, err := h.payableService.Pay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// AddNote appends a timestamped note to a payable
func (h *PayableHandler) AddNote(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.AddPayableNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	payable, err := h.payableService.AddNote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// Remove deletes a payable
func (h *PayableHandler) Remove(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.payableService.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
