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

// PurchaseService handles purchase business operations
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	txScope      TransactionScope
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo trade.PurchaseRepository, txScope TransactionScope) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
	}
}

// Create creates a new purchase with its items. A purchase created as
// COMPLETED, either explicitly or because it is fully paid up front, is
// received on the spot: every line credits stock in the same transaction
// that persists the purchase.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	purchaseNumber, err := s.purchaseRepo.GeneratePurchaseNumber(ctx)
	if err != nil {
		return nil, err
	}

	purchase, err := trade.NewPurchase(purchaseNumber, req.SupplierID, req.SupplierName, req.BranchID)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		unitCost := valueobject.NewMoneyIDR(item.UnitCost)
		if _, err := purchase.AddItem(item.ProductID, item.ProductName, item.ProductCode, item.Quantity, unitCost); err != nil {
			return nil, err
		}
	}

	if !req.TaxAmount.IsZero() {
		if err := purchase.SetTaxAmount(req.TaxAmount); err != nil {
			return nil, err
		}
	}
	if req.PaidAmount.IsPositive() {
		if err := purchase.RecordPayment(req.PaidAmount); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		purchase.SetRemark(req.Remark)
	}

	completeNow := purchase.IsFullyPaid() && purchase.TotalAmount.IsPositive()
	if req.Status != nil && trade.PurchaseStatus(*req.Status) == trade.PurchaseStatusCompleted {
		completeNow = true
	}

	if !completeNow {
		if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
			return nil, err
		}
		return ToPurchaseResponse(purchase), nil
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		deltas, err := purchase.Complete()
		if err != nil {
			return err
		}
		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		if err := creditReceivedDeltas(ctx, repos, purchase, deltas); err != nil {
			return err
		}
		return s.ensurePayable(ctx, repos, purchase)
	})
	if err != nil {
		return nil, err
	}

	return ToPurchaseResponse(purchase), nil
}

// GetByID returns a purchase
func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// List returns purchases matching the filter
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	domainFilter := trade.PurchaseFilter{
		Filter:     shared.DefaultFilter(),
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
	if filter.Status != nil {
		status := trade.PurchaseStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown purchase status")
		}
		domainFilter.Status = &status
	}
	domainFilter.Search = filter.Search

	purchases, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = *ToPurchaseResponse(&purchases[i])
	}
	return responses, total, nil
}

// Receive records cumulative received quantities for a purchase. The
// purchase update, the stock credits, and the payable (once fully received)
// share one transaction: a version conflict or stock failure rolls all of
// it back, and the delta computation means a retried call credits nothing
// it already credited.
func (s *PurchaseService) Receive(ctx context.Context, purchaseID uuid.UUID, req ReceivePurchaseRequest) (*ReceiveResultResponse, error) {
	receiveItems := make([]trade.ReceiveItem, len(req.Items))
	for i, item := range req.Items {
		receiveItems[i] = trade.ReceiveItem{
			ProductID:        item.ProductID,
			ReceivedQuantity: item.ReceivedQuantity,
		}
	}

	var result ReceiveResultResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		deltas, err := purchase.ReceiveItems(receiveItems)
		if err != nil {
			return err
		}

		if err := creditReceivedDeltas(ctx, repos, purchase, deltas); err != nil {
			return err
		}

		if err := repos.Purchases().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		if purchase.Status == trade.PurchaseStatusCompleted {
			if err := s.ensurePayable(ctx, repos, purchase); err != nil {
				return err
			}
		}

		result.Purchase = ToPurchaseResponse(purchase)
		result.IsFullyReceived = purchase.Status == trade.PurchaseStatusCompleted
		result.CreditedDeltas = make([]CreditedDeltaResponse, len(deltas))
		for i, d := range deltas {
			result.CreditedDeltas[i] = CreditedDeltaResponse{
				ProductID:   d.ProductID,
				ProductName: d.ProductName,
				Delta:       d.Delta,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Complete force-receives everything still outstanding on a purchase. The
// remaining quantity of every line credits stock, and the purchase ends
// COMPLETED, exactly as if the goods had been received line by line.
func (s *PurchaseService) Complete(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	var response *PurchaseResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.Purchases().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		deltas, err := purchase.Complete()
		if err != nil {
			return err
		}

		if err := creditReceivedDeltas(ctx, repos, purchase, deltas); err != nil {
			return err
		}

		if err := repos.Purchases().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		if err := s.ensurePayable(ctx, repos, purchase); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// creditReceivedDeltas applies the positive stock deltas of a receiving
// operation through the inventory adjuster.
func creditReceivedDeltas(ctx context.Context, repos TransactionalRepositories, purchase *trade.Purchase, deltas []trade.ReceivedDelta) error {
	adjuster := inventory.NewAdjuster(repos.Stock())
	for _, d := range deltas {
		if err := adjuster.Credit(ctx, d.ProductID, purchase.BranchID, d.Delta,
			inventory.MovementTypePurchaseReceipt, "Purchase", &purchase.ID, purchase.PurchaseNumber); err != nil {
			return err
		}
	}
	return nil
}

// ensurePayable opens the supplier payable for a completed purchase,
// covering whatever is still owed. Fully prepaid purchases owe nothing and
// get no payable. Idempotent on the purchase: a retry after a partial
// failure finds the existing payable and moves on.
func (s *PurchaseService) ensurePayable(ctx context.Context, repos TransactionalRepositories, purchase *trade.Purchase) error {
	outstanding := purchase.OutstandingAmount()
	if outstanding.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	existing, err := repos.Payables().FindBySource(ctx, finance.PayableSourceTypePurchase, purchase.ID)
	if err != nil && !shared.IsDomainErrorCode(err, "NOT_FOUND") {
		return err
	}
	if existing != nil {
		return nil
	}

	payableNumber, err := repos.Payables().GeneratePayableNumber(ctx)
	if err != nil {
		return err
	}

	payable, err := finance.NewAccountPayable(
		payableNumber,
		purchase.SupplierID,
		purchase.SupplierName,
		finance.PayableSourceTypePurchase,
		&purchase.ID,
		purchase.PurchaseNumber,
		valueobject.NewMoneyIDR(outstanding),
		nil,
	)
	if err != nil {
		return err
	}

	return repos.Payables().Save(ctx, payable)
}

// Cancel cancels a purchase that has not been completed
func (s *PurchaseService) Cancel(ctx context.Context, purchaseID uuid.UUID, req CancelPurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := purchase.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// Delete removes a purchase that has not been completed
func (s *PurchaseService) Delete(ctx context.Context, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if err := purchase.CanRemove(); err != nil {
		return err
	}
	return s.purchaseRepo.Delete(ctx, purchase.ID)
}
