package handler

import (
	tradeapp "github.com/goldsmith/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// ReturnHandler handles customer and supplier return API endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *tradeapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// RegisterRoutes registers return routes
func (h *ReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/returns")
	{
		returns.GET("", h.List)
		returns.POST("", h.Create)
		returns.GET("/:id", h.Get)
		returns.POST("/:id/approve", h.Approve)
		returns.POST("/:id/reject", h.Reject)
		returns.POST("/:id/complete", h.Complete)
		returns.DELETE("/:id", h.Remove)
	}
}

// Create files a return against a sale or a purchase
func (h *ReturnHandler) Create(c *gin.Context) {
	var req tradeapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	ret, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// Get returns a return by ID
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	ret, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// List lists returns
func (h *ReturnHandler) List(c *gin.Context) {
	var filter tradeapp.ReturnListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.handleBindError(c, err)
		return
	}

	returns, total, err := h.returnService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, returns, total, page, pageSize)
}

// Approve approves a pending return
func (h *ReturnHandler) Approve(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.ApproveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	ret, err := h.returnService.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Reject rejects a pending return
func (h *ReturnHandler) Reject(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.RejectReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	ret, err := h.returnService.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Complete executes an approved return: restockable goods go back to
// inventory and the refund is posted, all in one transaction
func (h *ReturnHandler) Complete(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.CompleteReturnRequest
	c.ShouldBindJSON(&req) // Ignore error, refund account is optional

	ret, err := h.returnService.Complete(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// Remove deletes a return that has not been completed
func (h *ReturnHandler) Remove(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.returnService.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
