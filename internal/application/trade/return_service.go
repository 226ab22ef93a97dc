package trade

import (
	"context"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/inventory"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/goldsmith/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnService handles return business operations for both customer and
// supplier returns
type ReturnService struct {
	returnRepo   trade.ReturnRepository
	saleRepo     trade.SaleRepository
	purchaseRepo trade.PurchaseRepository
	txScope      TransactionScope
}

// NewReturnService creates a new ReturnService
func NewReturnService(returnRepo trade.ReturnRepository, saleRepo trade.SaleRepository, purchaseRepo trade.PurchaseRepository, txScope TransactionScope) *ReturnService {
	return &ReturnService{
		returnRepo:   returnRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
	}
}

// Create files a return against the original document named by the type: a
// sale for customer returns, a purchase for supplier returns. Exactly one
// of the two references must be given. Every line is validated against the
// original item, including quantities already claimed by earlier returns
// for the same document.
func (s *ReturnService) Create(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	returnType := trade.ReturnType(req.Type)
	switch returnType {
	case trade.ReturnTypeCustomer:
		if req.SaleID == nil || req.PurchaseID != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "A customer return references a sale and nothing else")
		}
		return s.createCustomerReturn(ctx, req)
	case trade.ReturnTypeSupplier:
		if req.PurchaseID == nil || req.SaleID != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "A supplier return references a purchase and nothing else")
		}
		return s.createSupplierReturn(ctx, req)
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown return type")
	}
}

func (s *ReturnService) createCustomerReturn(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, *req.SaleID)
	if err != nil {
		return nil, err
	}

	returnNumber, err := s.returnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	ret, err := trade.NewCustomerReturn(returnNumber, sale.ID, sale.SaleNumber, sale.CustomerID, sale.CustomerName, req.Reason, sale.BranchID)
	if err != nil {
		return nil, err
	}

	priorReturns, err := s.returnRepo.FindBySale(ctx, sale.ID)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		saleItem := sale.GetItem(line.SourceItemID)
		if saleItem == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Sale item not found on sale")
		}

		available := saleItem.Quantity.Sub(alreadyReturned(priorReturns, line.SourceItemID))

		restock := true
		if line.Restock != nil {
			restock = *line.Restock
		}

		if _, err := ret.AddItem(saleItem.ID, saleItem.ProductID, saleItem.ProductName, saleItem.ProductCode,
			available, line.ReturnQuantity, valueobject.NewMoneyIDR(saleItem.UnitPrice), restock); err != nil {
			return nil, err
		}
	}

	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}

	return ToReturnResponse(ret), nil
}

func (s *ReturnService) createSupplierReturn(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, *req.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status == trade.PurchaseStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot file a return against a cancelled purchase")
	}

	returnNumber, err := s.returnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	ret, err := trade.NewSupplierReturn(returnNumber, purchase.ID, purchase.PurchaseNumber, purchase.SupplierID, purchase.SupplierName, req.Reason, purchase.BranchID)
	if err != nil {
		return nil, err
	}

	priorReturns, err := s.returnRepo.FindByPurchase(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Items {
		purchaseItem := purchase.GetItemByID(line.SourceItemID)
		if purchaseItem == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Purchase item not found on purchase")
		}

		// Only goods actually received can go back to the supplier
		available := purchaseItem.ReceivedQuantity.Sub(alreadyReturned(priorReturns, line.SourceItemID))

		if _, err := ret.AddItem(purchaseItem.ID, purchaseItem.ProductID, purchaseItem.ProductName, purchaseItem.ProductCode,
			available, line.ReturnQuantity, valueobject.NewMoneyIDR(purchaseItem.UnitCost), true); err != nil {
			return nil, err
		}
	}

	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}

	return ToReturnResponse(ret), nil
}

// GetByID returns a return
func (s *ReturnService) GetByID(ctx context.Context, returnID uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	return ToReturnResponse(ret), nil
}

// List returns returns matching the filter
func (s *ReturnService) List(ctx context.Context, filter ReturnListFilter) ([]ReturnResponse, int64, error) {
	domainFilter := trade.ReturnFilter{
		Filter:     shared.DefaultFilter(),
		SaleID:     filter.SaleID,
		PurchaseID: filter.PurchaseID,
		CustomerID: filter.CustomerID,
		SupplierID: filter.SupplierID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Type != nil {
		returnType := trade.ReturnType(*filter.Type)
		if !returnType.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown return type")
		}
		domainFilter.Type = &returnType
	}
	if filter.Status != nil {
		status := trade.ReturnStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown return status")
		}
		domainFilter.Status = &status
	}

	returns, err := s.returnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.returnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReturnResponse, len(returns))
	for i := range returns {
		responses[i] = *ToReturnResponse(&returns[i])
	}
	return responses, total, nil
}

// Approve approves a pending return. Approving a customer return also moves
// the original sale to PARTIAL or REFUNDED according to the refund amount;
// both writes share one transaction so the sale can never disagree with the
// approval.
func (s *ReturnService) Approve(ctx context.Context, returnID uuid.UUID, req ApproveReturnRequest) (*ReturnResponse, error) {
	var response *ReturnResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.Returns().FindByID(ctx, returnID)
		if err != nil {
			return err
		}

		if err := ret.Approve(req.ApproverID, req.Note); err != nil {
			return err
		}

		if ret.Type == trade.ReturnTypeCustomer && ret.SaleID != nil {
			sale, err := repos.Sales().FindByID(ctx, *ret.SaleID)
			if err != nil {
				return err
			}
			if err := sale.ApplyRefund(ret.GetTotalRefundMoney()); err != nil {
				return err
			}
			if err := repos.Sales().SaveWithLock(ctx, sale); err != nil {
				return err
			}
		}

		if err := repos.Returns().SaveWithLock(ctx, ret); err != nil {
			return err
		}

		response = ToReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Reject rejects a pending return
func (s *ReturnService) Reject(ctx context.Context, returnID uuid.UUID, req RejectReturnRequest) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := ret.Reject(req.RejecterID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.returnRepo.SaveWithLock(ctx, ret); err != nil {
		return nil, err
	}
	return ToReturnResponse(ret), nil
}

// Complete finalizes an approved return. Customer returns put restockable
// goods back on the shelf; supplier returns take the goods out of stock.
// An optional bank account posts the refund movement: a withdrawal paying
// the customer out, or a deposit of the money the supplier pays back. All
// of it shares one transaction.
func (s *ReturnService) Complete(ctx context.Context, returnID uuid.UUID, req CompleteReturnRequest) (*ReturnResponse, error) {
	var response *ReturnResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.Returns().FindByID(ctx, returnID)
		if err != nil {
			return err
		}

		deltas, err := ret.Complete()
		if err != nil {
			return err
		}

		adjuster := inventory.NewAdjuster(repos.Stock())
		for _, d := range deltas {
			if d.Delta.IsPositive() {
				err = adjuster.Credit(ctx, d.ProductID, ret.BranchID, d.Delta,
					inventory.MovementTypeReturnRestock, "Return", &ret.ID, ret.ReturnNumber)
			} else {
				err = adjuster.Debit(ctx, d.ProductID, ret.BranchID, d.Delta.Neg(),
					inventory.MovementTypeSupplierReturn, "Return", &ret.ID, ret.ReturnNumber)
			}
			if err != nil {
				return err
			}
		}

		if req.RefundAccountID != nil && ret.TotalRefund.GreaterThan(decimal.Zero) {
			if err := s.postRefund(ctx, repos, ret, *req.RefundAccountID); err != nil {
				return err
			}
		}

		if err := repos.Returns().SaveWithLock(ctx, ret); err != nil {
			return err
		}

		response = ToReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// postRefund posts the money side of a completed return to the bank ledger
func (s *ReturnService) postRefund(ctx context.Context, repos TransactionalRepositories, ret *trade.Return, accountID uuid.UUID) error {
	account, err := repos.Accounts().FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	txType := finance.BankTransactionTypeWithdrawal
	remark := "Customer refund " + ret.CustomerName
	if ret.Type == trade.ReturnTypeSupplier {
		txType = finance.BankTransactionTypeDeposit
		remark = "Supplier refund " + ret.SupplierName
	}

	tx, err := account.Post(txType, ret.GetTotalRefundMoney(), finance.PostOptions{
		Reference: ret.ReturnNumber,
		Remark:    remark,
	})
	if err != nil {
		return err
	}
	return repos.Accounts().SaveWithTransaction(ctx, account, tx)
}

// Remove deletes a return that has not been completed
func (s *ReturnService) Remove(ctx context.Context, returnID uuid.UUID) error {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return err
	}
	if err := ret.CanRemove(); err != nil {
		return err
	}
	return s.returnRepo.Delete(ctx, ret.ID)
}

// alreadyReturned sums the quantity of an original line claimed by returns
// that are still pending, approved, or completed. Rejected returns release
// their claim.
func alreadyReturned(returns []trade.Return, sourceItemID uuid.UUID) (total decimal.Decimal) {
	total = decimal.Zero
	for i := range returns {
		if returns[i].Status == trade.ReturnStatusRejected {
			continue
		}
		for j := range returns[i].Items {
			if returns[i].Items[j].SourceItemID == sourceItemID {
				total = total.Add(returns[i].Items[j].ReturnQuantity)
			}
		}
	}
	return total
}
