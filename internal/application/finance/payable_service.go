package finance

import (
	"context"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PayableService handles account payable operations
type PayableService struct {
	payableRepo finance.AccountPayableRepository
	txScope     TransactionScope
}

// NewPayableService creates a new PayableService
func NewPayableService(payableRepo finance.AccountPayableRepository, txScope TransactionScope) *PayableService {
	return &PayableService{
		payableRepo: payableRepo,
		txScope:     txScope,
	}
}

// Create creates a manual payable
func (s *PayableService) Create(ctx context.Context, req CreatePayableRequest) (*PayableResponse, error) {
	payableNumber, err := s.payableRepo.GeneratePayableNumber(ctx)
	if err != nil {
		return nil, err
	}

	total, err := valueobject.NewMoneyIDRFromString(req.TotalAmount.String())
	if err != nil {
		return nil, err
	}

	payable, err := finance.NewAccountPayable(
		payableNumber,
		req.SupplierID,
		req.SupplierName,
		finance.PayableSourceTypeManual,
		nil,
		req.SourceNumber,
		total,
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, err
	}

	return ToPayableResponse(payable), nil
}

// CreateFromPurchase creates a payable for a received purchase. Idempotent on
// the source: an existing payable for the purchase is returned as-is.
func (s *PayableService) CreateFromPurchase(ctx context.Context, purchaseID uuid.UUID, purchaseNumber string, supplierID uuid.UUID, supplierName string, total valueobject.Money) (*PayableResponse, error) {
	existing, err := s.payableRepo.FindBySource(ctx, finance.PayableSourceTypePurchase, purchaseID)
	if err != nil && !shared.IsDomainErrorCode(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return ToPayableResponse(existing), nil
	}

	payableNumber, err := s.payableRepo.GeneratePayableNumber(ctx)
	if err != nil {
		return nil, err
	}

	payable, err := finance.NewAccountPayable(
		payableNumber,
		supplierID,
		supplierName,
		finance.PayableSourceTypePurchase,
		&purchaseID,
		purchaseNumber,
		total,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, err
	}

	return ToPayableResponse(payable), nil
}

// GetByID returns a payable
func (s *PayableService) GetByID(ctx context.Context, payableID uuid.UUID) (*PayableResponse, error) {
	payable, err := s.payableRepo.FindByID(ctx, payableID)
	if err != nil {
		return nil, err
	}
	return ToPayableResponse(payable), nil
}

// List returns payables matching the filter
func (s *PayableService) List(ctx context.Context, filter PayableListFilter) ([]PayableResponse, int64, error) {
	domainFilter := finance.AccountPayableFilter{
		Filter:     shared.DefaultFilter(),
		SupplierID: filter.SupplierID,
		Overdue:    filter.Overdue,
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
		status := finance.SettlementStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown settlement status")
		}
		domainFilter.Status = &status
	}
	domainFilter.Search = filter.Search

	payables, err := s.payableRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.payableRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PayableResponse, len(payables))
	for i := range payables {
		responses[i] = *ToPayableResponse(&payables[i])
	}
	return responses, total, nil
}

// Pay applies a payment to a payable. A bank-transfer payment also posts the
// matching withdrawal on the paying account; both writes share a transaction,
// so the payable and the ledger can never disagree about a payment.
func (s *PayableService) Pay(ctx context.Context, payableID uuid.UUID, req PayPayableRequest) (*PayableResponse, error) {
	method := finance.PaymentMethod(req.Method)
	if method == finance.PaymentMethodBankTransfer && req.BankAccountID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bank account is required for bank transfer payments")
	}

	var response *PayableResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		payable, err := repos.Payables().FindByID(ctx, payableID)
		if err != nil {
			return err
		}

		amount, err := valueobject.NewMoneyIDRFromString(req.Amount.String())
		if err != nil {
			return err
		}

		record, err := payable.ApplyPayment(amount, req.BankAccountID, method, req.Reference)
		if err != nil {
			return err
		}

		if method == finance.PaymentMethodBankTransfer {
			account, err := repos.Accounts().FindByID(ctx, *req.BankAccountID)
			if err != nil {
				return err
			}
			tx, err := account.Post(finance.BankTransactionTypeWithdrawal, amount, finance.PostOptions{
				Reference: payable.PayableNumber,
				Remark:    "Supplier payment " + record.ID.String(),
			})
			if err != nil {
				return err
			}
			if err := repos.Accounts().SaveWithTransaction(ctx, account, tx); err != nil {
				return err
			}
		}

		if err := repos.Payables().SaveWithLock(ctx, payable); err != nil {
			return err
		}

		response = ToPayableResponse(payable)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Update revises the amount owed and/or the due date of a payable. Paid
// amounts only move through Pay, so the payment history stays intact; a
// revised total re-derives the settlement status against the payments on file.
func (s *PayableService) Update(ctx context.Context, payableID uuid.UUID, req UpdatePayableRequest) (*PayableResponse, error) {
	payable, err := s.payableRepo.FindByID(ctx, payableID)
	if err != nil {
		return nil, err
	}

	if req.TotalAmount != nil {
		total, err := valueobject.NewMoneyIDRFromString(req.TotalAmount.String())
		if err != nil {
			return nil, err
		}
		if err := payable.ReviseTotalAmount(total); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := payable.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}

	if err := s.payableRepo.SaveWithLock(ctx, payable); err != nil {
		return nil, err
	}
	return ToPayableResponse(payable), nil
}

// AddNote appends a timestamped note to a payable
func (s *PayableService) AddNote(ctx context.Context, payableID uuid.UUID, req AddPayableNoteRequest) (*PayableResponse, error) {
	payable, err := s.payableRepo.FindByID(ctx, payableID)
	if err != nil {
		return nil, err
	}
	if err := payable.AddNote(req.Author, req.Text); err != nil {
		return nil, err
	}
	if err := s.payableRepo.SaveWithLock(ctx, payable); err != nil {
		return nil, err
	}
	return ToPayableResponse(payable), nil
}

// Remove deletes a payable that carries no payments
func (s *PayableService) Remove(ctx context.Context, payableID uuid.UUID) error {
	payable, err := s.payableRepo.FindByID(ctx, payableID)
	if err != nil {
		return err
	}
	if err := payable.CanRemove(); err != nil {
		return err
	}
	return s.payableRepo.Delete(ctx, payable.ID)
}
