package handler

import (
	financeapp "github.com/goldsmith/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// BankAccountHandler handles bank account API endpoints
type BankAccountHandler struct {
	BaseHandler
	accountService *financeapp.BankAccountService
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(accountService *financeapp.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accountService: accountService}
}

// RegisterRoutes registers bank account routes
func (h *BankAccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/bank-accounts")
	{
		accounts.GET("", h.List)
		accounts.POST("", h.Open)
		accounts.GET("/:id", h.Get)
		accounts.GET("/:id/transactions", h.ListTransactions)
		accounts.GET("/:id/journal-check", h.CheckJournal)
		accounts.POST("/:id/transactions", h.PostTransaction)
		accounts.POST("/:id/reconcile", h.Reconcile)
		accounts.POST("/:id/activate", h.Activate)
		accounts.POST("/:id/deactivate", h.Deactivate)
		accounts.DELETE("/:id", h.Close)
		accounts.POST("/transfer", h.Transfer)
	}
}

// Open opens a new bank account
func (h *BankAccountHandler) Open(c *gin.Context) {
	var req financeapp.OpenBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	account, err := h.accountService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// Get returns a bank account by ID
func (h *BankAccountHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// List lists bank accounts
func (h *BankAccountHandler) List(c *gin.Context) {
	var filter financeapp.BankAccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.handleBindError(c, err)
		return
	}

	accounts, total, err := h.accountService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, accounts, total, page, pageSize)
}

// PostTransaction posts a deposit or withdrawal to an account
func (h *BankAccountHandler) PostTransaction(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	tx, err := h.accountService.Post(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Transfer moves money between two accounts
func (h *BankAccountHandler) Transfer(c *gin.Context) {
	var req financeapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	result, err := h.accountService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListTransactions lists ledger entries for an account
func (h *BankAccountHandler) ListTransactions(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter financeapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.handleBindError(c, err)
		return
	}

	transactions, err := h.accountService.ListTransactions(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transactions)
}

// Reconcile marks ledger entries as reconciled
func (h *BankAccountHandler) Reconcile(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	reconciled, err := h.accountService.Reconcile(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"reconciled_ids": reconciled})
}

// CheckJournal verifies the balance against the journal sum
func (h *BankAccountHandler) CheckJournal(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.accountService.CheckJournal(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Activate reactivates a deactivated account
func (h *BankAccountHandler) Activate(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Deactivate deactivates an account
func (h *BankAccountHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Close closes a bank account
func (h *BankAccountHandler) Close(c *gin.Context) {
	id, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.Close(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
