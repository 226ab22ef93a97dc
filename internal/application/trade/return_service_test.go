package trade

import (
	"context"
	"testing"
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/goldsmith/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSettledSale(t *testing.T, productID uuid.UUID, quantity, unitPrice int64) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale("SO-2026-030", uuid.New(), "Ibu Ratna", nil, time.Now())
	require.NoError(t, err)
	_, err = sale.AddItem(productID, "Gold necklace 5g", "NECK-5G", decimal.NewFromInt(quantity), valueobject.NewMoneyIDRFromInt(unitPrice))
	require.NoError(t, err)
	return sale
}

func newReceivedPurchase(t *testing.T, productID uuid.UUID, quantity int64) *trade.Purchase {
	t.Helper()
	purchase, err := trade.NewPurchase("PO-2026-030", uuid.New(), "PT Logam Mulia", nil)
	require.NoError(t, err)
	_, err = purchase.AddItem(productID, "Gold ring 2g", "RING-2G", decimal.NewFromInt(quantity), valueobject.NewMoneyIDRFromInt(1500000))
	require.NoError(t, err)
	_, err = purchase.ReceiveItems([]trade.ReceiveItem{{ProductID: productID, ReceivedQuantity: decimal.NewFromInt(quantity)}})
	require.NoError(t, err)
	purchase.ClearDomainEvents()
	return purchase
}

func newPendingCustomerReturnFor(t *testing.T, sale *trade.Sale, returnQuantity int64, restock bool) *trade.Return {
	t.Helper()
	ret, err := trade.NewCustomerReturn("RT-2026-001", sale.ID, sale.SaleNumber, sale.CustomerID, sale.CustomerName, "Wrong size", sale.BranchID)
	require.NoError(t, err)
	item := &sale.Items[0]
	_, err = ret.AddItem(item.ID, item.ProductID, item.ProductName, item.ProductCode,
		item.Quantity, decimal.NewFromInt(returnQuantity), valueobject.NewMoneyIDR(item.UnitPrice), restock)
	require.NoError(t, err)
	ret.ClearDomainEvents()
	return ret
}

func newApprovedCustomerReturn(t *testing.T, sale *trade.Sale, returnQuantity int64, restock bool) *trade.Return {
	t.Helper()
	ret := newPendingCustomerReturnFor(t, sale, returnQuantity, restock)
	require.NoError(t, ret.Approve(uuid.New(), ""))
	ret.ClearDomainEvents()
	return ret
}

func newApprovedSupplierReturn(t *testing.T, purchase *trade.Purchase, returnQuantity int64) *trade.Return {
	t.Helper()
	ret, err := trade.NewSupplierReturn("RT-2026-002", purchase.ID, purchase.PurchaseNumber, purchase.SupplierID, purchase.SupplierName, "Wrong alloy", purchase.BranchID)
	require.NoError(t, err)
	item := &purchase.Items[0]
	_, err = ret.AddItem(item.ID, item.ProductID, item.ProductName, item.ProductCode,
		item.ReceivedQuantity, decimal.NewFromInt(returnQuantity), valueobject.NewMoneyIDR(item.UnitCost), true)
	require.NoError(t, err)
	require.NoError(t, ret.Approve(uuid.New(), ""))
	ret.ClearDomainEvents()
	return ret
}

func newReturnScope(returnRepo *MockReturnRepository, saleRepo *MockSaleRepository, stockRepo *MockStockRepository, accountRepo *MockBankAccountRepository) *NoOpTransactionScope {
	return NewNoOpTransactionScope(nil, returnRepo, saleRepo, stockRepo, nil, accountRepo)
}

func TestReturnService_Create(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("valid customer request files a pending return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-002", nil)
		returnRepo.On("FindBySale", ctx, sale.ID).Return([]trade.Return{}, nil)
		returnRepo.On("Save", ctx, mock.MatchedBy(func(r *trade.Return) bool {
			return r.ReturnNumber == "RT-2026-002" && r.Type == trade.ReturnTypeCustomer &&
				r.Status == trade.ReturnStatusPending && len(r.Items) == 1
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateReturnRequest{
			Type:   "CUSTOMER_RETURN",
			SaleID: &sale.ID,
			Reason: "Wrong size",
			Items: []CreateReturnItemRequest{
				{SourceItemID: sale.Items[0].ID, ReturnQuantity: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "CUSTOMER_RETURN", resp.Type)
		assert.True(t, decimal.NewFromInt(4000000).Equal(resp.TotalRefund))
		returnRepo.AssertExpectations(t)
	})

	t.Run("valid supplier request files a pending return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		purchaseRepo := new(MockPurchaseRepository)
		purchase := newReceivedPurchase(t, productID, 5)
		svc := NewReturnService(returnRepo, nil, purchaseRepo, newReturnScope(returnRepo, nil, nil, nil))

		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-003", nil)
		returnRepo.On("FindByPurchase", ctx, purchase.ID).Return([]trade.Return{}, nil)
		returnRepo.On("Save", ctx, mock.MatchedBy(func(r *trade.Return) bool {
			return r.Type == trade.ReturnTypeSupplier && r.PurchaseID != nil && *r.PurchaseID == purchase.ID
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateReturnRequest{
			Type:       "SUPPLIER_RETURN",
			PurchaseID: &purchase.ID,
			Reason:     "Wrong alloy delivered",
			Items: []CreateReturnItemRequest{
				{SourceItemID: purchase.Items[0].ID, ReturnQuantity: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "SUPPLIER_RETURN", resp.Type)
		assert.True(t, decimal.NewFromInt(3000000).Equal(resp.TotalRefund))
		returnRepo.AssertExpectations(t)
	})

	t.Run("customer return with a purchase reference is rejected", func(t *testing.T) {
		svc := NewReturnService(nil, nil, nil, newReturnScope(nil, nil, nil, nil))
		saleID, purchaseID := uuid.New(), uuid.New()

		_, err := svc.Create(ctx, CreateReturnRequest{
			Type:       "CUSTOMER_RETURN",
			SaleID:     &saleID,
			PurchaseID: &purchaseID,
			Reason:     "Wrong size",
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_INPUT"))
	})

	t.Run("supplier return without a purchase reference is rejected", func(t *testing.T) {
		svc := NewReturnService(nil, nil, nil, newReturnScope(nil, nil, nil, nil))

		_, err := svc.Create(ctx, CreateReturnRequest{
			Type:   "SUPPLIER_RETURN",
			Reason: "Wrong alloy",
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_INPUT"))
	})

	t.Run("supplier return against a cancelled purchase is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		purchaseRepo := new(MockPurchaseRepository)
		purchase, err := trade.NewPurchase("PO-2026-031", uuid.New(), "PT Logam Mulia", nil)
		require.NoError(t, err)
		_, err = purchase.AddItem(productID, "Gold ring 2g", "RING-2G", decimal.NewFromInt(5), valueobject.NewMoneyIDRFromInt(1500000))
		require.NoError(t, err)
		require.NoError(t, purchase.Cancel("Supplier out of stock"))
		svc := NewReturnService(returnRepo, nil, purchaseRepo, newReturnScope(returnRepo, nil, nil, nil))

		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)

		_, err = svc.Create(ctx, CreateReturnRequest{
			Type:       "SUPPLIER_RETURN",
			PurchaseID: &purchase.ID,
			Reason:     "Wrong alloy",
			Items: []CreateReturnItemRequest{
				{SourceItemID: purchase.Items[0].ID, ReturnQuantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_STATE"))
		returnRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("supplier return beyond received quantity is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		purchaseRepo := new(MockPurchaseRepository)
		purchase, err := trade.NewPurchase("PO-2026-032", uuid.New(), "PT Logam Mulia", nil)
		require.NoError(t, err)
		_, err = purchase.AddItem(productID, "Gold ring 2g", "RING-2G", decimal.NewFromInt(10), valueobject.NewMoneyIDRFromInt(1500000))
		require.NoError(t, err)
		_, err = purchase.ReceiveItems([]trade.ReceiveItem{{ProductID: productID, ReceivedQuantity: decimal.NewFromInt(4)}})
		require.NoError(t, err)
		svc := NewReturnService(returnRepo, nil, purchaseRepo, newReturnScope(returnRepo, nil, nil, nil))

		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-004", nil)
		returnRepo.On("FindByPurchase", ctx, purchase.ID).Return([]trade.Return{}, nil)

		_, err = svc.Create(ctx, CreateReturnRequest{
			Type:       "SUPPLIER_RETURN",
			PurchaseID: &purchase.ID,
			Reason:     "Wrong alloy",
			Items: []CreateReturnItemRequest{
				{SourceItemID: purchase.Items[0].ID, ReturnQuantity: decimal.NewFromInt(5)},
			},
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "QUANTITY_EXCEEDED"))
	})

	t.Run("quantity beyond the sale line is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-005", nil)
		returnRepo.On("FindBySale", ctx, sale.ID).Return([]trade.Return{}, nil)

		_, err := svc.Create(ctx, CreateReturnRequest{
			Type:   "CUSTOMER_RETURN",
			SaleID: &sale.ID,
			Reason: "Wrong size",
			Items: []CreateReturnItemRequest{
				{SourceItemID: sale.Items[0].ID, ReturnQuantity: decimal.NewFromInt(4)},
			},
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "QUANTITY_EXCEEDED"))
		returnRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("earlier returns shrink the returnable quantity", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		prior := newApprovedCustomerReturn(t, sale, 2, true)

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-006", nil)
		returnRepo.On("FindBySale", ctx, sale.ID).Return([]trade.Return{*prior}, nil)

		_, err := svc.Create(ctx, CreateReturnRequest{
			Type:   "CUSTOMER_RETURN",
			SaleID: &sale.ID,
			Reason: "Changed mind",
			Items: []CreateReturnItemRequest{
				{SourceItemID: sale.Items[0].ID, ReturnQuantity: decimal.NewFromInt(2)},
			},
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "QUANTITY_EXCEEDED"))
	})

	t.Run("rejected returns release their claim", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		rejected := newPendingCustomerReturnFor(t, sale, 3, true)
		require.NoError(t, rejected.Reject(uuid.New(), "No receipt"))

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-007", nil)
		returnRepo.On("FindBySale", ctx, sale.ID).Return([]trade.Return{*rejected}, nil)
		returnRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateReturnRequest{
			Type:   "CUSTOMER_RETURN",
			SaleID: &sale.ID,
			Reason: "Wrong size",
			Items: []CreateReturnItemRequest{
				{SourceItemID: sale.Items[0].ID, ReturnQuantity: decimal.NewFromInt(3)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
	})

	t.Run("unknown sale item is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		returnRepo.On("GenerateReturnNumber", ctx).Return("RT-2026-008", nil)
		returnRepo.On("FindBySale", ctx, sale.ID).Return([]trade.Return{}, nil)

		_, err := svc.Create(ctx, CreateReturnRequest{
			Type:   "CUSTOMER_RETURN",
			SaleID: &sale.ID,
			Reason: "Wrong size",
			Items: []CreateReturnItemRequest{
				{SourceItemID: uuid.New(), ReturnQuantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "NOT_FOUND"))
	})
}

func TestReturnService_ApproveReject(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("approving a customer return applies the refund to the sale", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newPendingCustomerReturnFor(t, sale, 2, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		saleRepo.On("SaveWithLock", ctx, sale).Return(nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		resp, err := svc.Approve(ctx, ret.ID, ApproveReturnRequest{ApproverID: uuid.New(), Note: "Within policy"})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.True(t, decimal.NewFromInt(4000000).Equal(sale.RefundedAmount))
		assert.Equal(t, trade.RefundStatusPartial, sale.RefundStatus)
		returnRepo.AssertExpectations(t)
		saleRepo.AssertExpectations(t)
	})

	t.Run("approving a supplier return leaves sales alone", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		purchase := newReceivedPurchase(t, productID, 5)
		ret, err := trade.NewSupplierReturn("RT-2026-009", purchase.ID, purchase.PurchaseNumber, purchase.SupplierID, purchase.SupplierName, "Wrong alloy", nil)
		require.NoError(t, err)
		item := &purchase.Items[0]
		_, err = ret.AddItem(item.ID, item.ProductID, item.ProductName, item.ProductCode,
			item.ReceivedQuantity, decimal.NewFromInt(2), valueobject.NewMoneyIDR(item.UnitCost), true)
		require.NoError(t, err)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		resp, err := svc.Approve(ctx, ret.ID, ApproveReturnRequest{ApproverID: uuid.New()})

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		saleRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("refund beyond the sale total rolls the approval back", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		require.NoError(t, sale.ApplyRefund(valueobject.NewMoneyIDRFromInt(5000000)))
		ret := newPendingCustomerReturnFor(t, sale, 2, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := svc.Approve(ctx, ret.ID, ApproveReturnRequest{ApproverID: uuid.New()})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "OVERPAYMENT"))
		returnRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("reject pending return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newPendingCustomerReturnFor(t, sale, 1, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		resp, err := svc.Reject(ctx, ret.ID, RejectReturnRequest{RejecterID: uuid.New(), Reason: "No receipt"})

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
	})

	t.Run("approve rejected return fails", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newPendingCustomerReturnFor(t, sale, 1, true)
		require.NoError(t, ret.Reject(uuid.New(), "No receipt"))
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)

		_, err := svc.Approve(ctx, ret.ID, ApproveReturnRequest{ApproverID: uuid.New()})
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_STATE"))
		returnRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestReturnService_Complete(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("customer return restocks goods", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		stockRepo := new(MockStockRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newApprovedCustomerReturn(t, sale, 2, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, stockRepo, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		stockRepo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(2))
		})).Return(nil)
		stockRepo.On("AdjustProductQuantity", ctx, productID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(2))
		})).Return(nil)
		stockRepo.On("RecordMovement", ctx, mock.Anything).Return(nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		resp, err := svc.Complete(ctx, ret.ID, CompleteReturnRequest{})

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		stockRepo.AssertExpectations(t)
		returnRepo.AssertExpectations(t)
	})

	t.Run("supplier return takes goods out of stock", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		stockRepo := new(MockStockRepository)
		purchase := newReceivedPurchase(t, productID, 5)
		ret := newApprovedSupplierReturn(t, purchase, 3)
		svc := NewReturnService(returnRepo, nil, nil, newReturnScope(returnRepo, nil, stockRepo, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		stockRepo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(-3))
		})).Return(nil)
		stockRepo.On("AdjustProductQuantity", ctx, productID, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(-3))
		})).Return(nil)
		stockRepo.On("RecordMovement", ctx, mock.Anything).Return(nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		resp, err := svc.Complete(ctx, ret.ID, CompleteReturnRequest{})

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		stockRepo.AssertExpectations(t)
	})

	t.Run("non-restockable customer goods skip inventory", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		stockRepo := new(MockStockRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newApprovedCustomerReturn(t, sale, 1, false)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, stockRepo, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		resp, err := svc.Complete(ctx, ret.ID, CompleteReturnRequest{})

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		stockRepo.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refund account posts a withdrawal for a customer return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		stockRepo := new(MockStockRepository)
		accountRepo := new(MockBankAccountRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newApprovedCustomerReturn(t, sale, 2, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, stockRepo, accountRepo))

		account, err := finance.NewBankAccount("1234567890", "Toko Emas Sejahtera", "BCA", "IDR", valueobject.NewMoneyIDRFromInt(10000000))
		require.NoError(t, err)

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		stockRepo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), mock.Anything).Return(nil)
		stockRepo.On("AdjustProductQuantity", ctx, productID, mock.Anything).Return(nil)
		stockRepo.On("RecordMovement", ctx, mock.Anything).Return(nil)
		accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		accountRepo.On("SaveWithTransaction", ctx, account, mock.MatchedBy(func(tx *finance.BankTransaction) bool {
			return tx.Type == finance.BankTransactionTypeWithdrawal && tx.Amount.Equal(decimal.NewFromInt(4000000))
		})).Return(nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		_, err = svc.Complete(ctx, ret.ID, CompleteReturnRequest{RefundAccountID: &account.ID})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(6000000).Equal(account.Balance))
		accountRepo.AssertExpectations(t)
	})

	t.Run("refund account posts a deposit for a supplier return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		stockRepo := new(MockStockRepository)
		accountRepo := new(MockBankAccountRepository)
		purchase := newReceivedPurchase(t, productID, 5)
		ret := newApprovedSupplierReturn(t, purchase, 2)
		svc := NewReturnService(returnRepo, nil, nil, newReturnScope(returnRepo, nil, stockRepo, accountRepo))

		account, err := finance.NewBankAccount("1234567890", "Toko Emas Sejahtera", "BCA", "IDR", valueobject.NewMoneyIDRFromInt(10000000))
		require.NoError(t, err)

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		stockRepo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), mock.Anything).Return(nil)
		stockRepo.On("AdjustProductQuantity", ctx, productID, mock.Anything).Return(nil)
		stockRepo.On("RecordMovement", ctx, mock.Anything).Return(nil)
		accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		accountRepo.On("SaveWithTransaction", ctx, account, mock.MatchedBy(func(tx *finance.BankTransaction) bool {
			return tx.Type == finance.BankTransactionTypeDeposit && tx.Amount.Equal(decimal.NewFromInt(3000000))
		})).Return(nil)
		returnRepo.On("SaveWithLock", ctx, ret).Return(nil)

		_, err = svc.Complete(ctx, ret.ID, CompleteReturnRequest{RefundAccountID: &account.ID})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(13000000).Equal(account.Balance))
		accountRepo.AssertExpectations(t)
	})

	t.Run("insufficient refund funds roll the completion back", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		stockRepo := new(MockStockRepository)
		accountRepo := new(MockBankAccountRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newApprovedCustomerReturn(t, sale, 2, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, stockRepo, accountRepo))

		account, err := finance.NewBankAccount("1234567890", "Toko Emas Sejahtera", "BCA", "IDR", valueobject.NewMoneyIDRFromInt(1000000))
		require.NoError(t, err)

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		stockRepo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), mock.Anything).Return(nil)
		stockRepo.On("AdjustProductQuantity", ctx, productID, mock.Anything).Return(nil)
		stockRepo.On("RecordMovement", ctx, mock.Anything).Return(nil)
		accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)

		_, err = svc.Complete(ctx, ret.ID, CompleteReturnRequest{RefundAccountID: &account.ID})

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INSUFFICIENT_FUNDS"))
		returnRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("pending return cannot be completed", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		saleRepo := new(MockSaleRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newPendingCustomerReturnFor(t, sale, 1, true)
		svc := NewReturnService(returnRepo, saleRepo, nil, newReturnScope(returnRepo, saleRepo, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)

		_, err := svc.Complete(ctx, ret.ID, CompleteReturnRequest{})
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_STATE"))
	})
}

func TestReturnService_Remove(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("pending return is deleted", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newPendingCustomerReturnFor(t, sale, 1, true)
		svc := NewReturnService(returnRepo, nil, nil, newReturnScope(returnRepo, nil, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)
		returnRepo.On("Delete", ctx, ret.ID).Return(nil)

		require.NoError(t, svc.Remove(ctx, ret.ID))
		returnRepo.AssertExpectations(t)
	})

	t.Run("completed return cannot be deleted", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		sale := newSettledSale(t, productID, 3, 2000000)
		ret := newApprovedCustomerReturn(t, sale, 1, true)
		_, err := ret.Complete()
		require.NoError(t, err)
		svc := NewReturnService(returnRepo, nil, nil, newReturnScope(returnRepo, nil, nil, nil))

		returnRepo.On("FindByID", ctx, ret.ID).Return(ret, nil)

		err = svc.Remove(ctx, ret.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_STATE"))
		returnRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
