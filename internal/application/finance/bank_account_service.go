package finance

import (
	"context"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BankAccountService handles bank account and ledger operations
type BankAccountService struct {
	accountRepo finance.BankAccountRepository
	txScope     TransactionScope
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(accountRepo finance.BankAccountRepository, txScope TransactionScope) *BankAccountService {
	return &BankAccountService{
		accountRepo: accountRepo,
		txScope:     txScope,
	}
}

// Open opens a new bank account
func (s *BankAccountService) Open(ctx context.Context, req OpenBankAccountRequest) (*BankAccountResponse, error) {
	existing, err := s.accountRepo.FindByAccountNumber(ctx, req.AccountNumber)
	if err != nil && !shared.IsDomainErrorCode(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}

	opening, err := valueobject.NewMoney(req.OpeningBalance, currency)
	if err != nil {
		return nil, err
	}

	account, err := finance.NewBankAccount(req.AccountNumber, req.Name, req.BankName, currency, opening)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		account.Remark = req.Remark
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	return ToBankAccountResponse(account), nil
}

// GetByID returns a bank account
func (s *BankAccountService) GetByID(ctx context.Context, accountID uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToBankAccountResponse(account), nil
}

// List returns bank accounts matching the filter
func (s *BankAccountService) List(ctx context.Context, filter BankAccountListFilter) ([]BankAccountResponse, int64, error) {
	domainFilter := finance.BankAccountFilter{
		Filter:   shared.DefaultFilter(),
		Active:   filter.Active,
		BankName: filter.BankName,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	accounts, err := s.accountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *ToBankAccountResponse(&accounts[i])
	}
	return responses, total, nil
}

// Post appends a ledger entry to an account. Balance update and journal
// insert happen in one version-guarded write.
func (s *BankAccountService) Post(ctx context.Context, accountID uuid.UUID, req PostTransactionRequest) (*BankTransactionResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, account.Currency)
	if err != nil {
		return nil, err
	}

	tx, err := account.Post(finance.BankTransactionType(req.Type), amount, finance.PostOptions{
		Reference:      req.Reference,
		Remark:         req.Remark,
		OccurredAt:     req.OccurredAt,
		AllowOverdraft: req.AllowOverdraft,
	})
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveWithTransaction(ctx, account, tx); err != nil {
		return nil, err
	}

	resp := ToBankTransactionResponse(tx)
	return &resp, nil
}

// Transfer moves money between two accounts as an atomic TRANSFER_OUT /
// TRANSFER_IN pair. Either both legs land or neither does.
func (s *BankAccountService) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cannot transfer to the same account")
	}

	var result TransferResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		from, err := repos.Accounts().FindByID(ctx, req.FromAccountID)
		if err != nil {
			return err
		}
		to, err := repos.Accounts().FindByID(ctx, req.ToAccountID)
		if err != nil {
			return err
		}
		if from.Currency != to.Currency {
			return shared.NewDomainError("CURRENCY_MISMATCH", "Transfer accounts must share a currency")
		}

		amount, err := valueobject.NewMoney(req.Amount, from.Currency)
		if err != nil {
			return err
		}

		opts := finance.PostOptions{Reference: req.Reference, Remark: req.Remark}
		outTx, err := from.Post(finance.BankTransactionTypeTransferOut, amount, opts)
		if err != nil {
			return err
		}
		inTx, err := to.Post(finance.BankTransactionTypeTransferIn, amount, opts)
		if err != nil {
			return err
		}

		if err := repos.Accounts().SaveWithTransaction(ctx, from, outTx); err != nil {
			return err
		}
		if err := repos.Accounts().SaveWithTransaction(ctx, to, inTx); err != nil {
			return err
		}

		result.OutTransaction = ToBankTransactionResponse(outTx)
		result.InTransaction = ToBankTransactionResponse(inTx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Reconcile marks ledger entries as matched against a bank statement
func (s *BankAccountService) Reconcile(ctx context.Context, accountID uuid.UUID, req ReconcileRequest) ([]uuid.UUID, error) {
	account, err := s.accountRepo.FindByIDWithTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	flipped, err := account.Reconcile(req.TransactionIDs, req.Date)
	if err != nil {
		return nil, err
	}
	if len(flipped) == 0 {
		return flipped, nil
	}

	if err := s.accountRepo.MarkReconciled(ctx, accountID, flipped, req.Date); err != nil {
		return nil, err
	}
	return flipped, nil
}

// ListTransactions lists ledger entries for an account
func (s *BankAccountService) ListTransactions(ctx context.Context, accountID uuid.UUID, filter TransactionListFilter) ([]BankTransactionResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	domainFilter := finance.BankTransactionFilter{
		Filter:     shared.DefaultFilter(),
		Reconciled: filter.Reconciled,
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
		txType := finance.BankTransactionType(*filter.Type)
		domainFilter.Type = &txType
	}

	txs, err := s.accountRepo.FindTransactions(ctx, accountID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToBankTransactionResponses(txs), nil
}

// Deactivate marks an account inactive
func (s *BankAccountService) Deactivate(ctx context.Context, accountID uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := account.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
		return nil, err
	}
	return ToBankAccountResponse(account), nil
}

// Activate re-enables a deactivated account
func (s *BankAccountService) Activate(ctx context.Context, accountID uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := account.Activate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
		return nil, err
	}
	return ToBankAccountResponse(account), nil
}

// Close removes an account that has never carried a transaction.
// Accounts with ledger history are deactivated, never deleted.
func (s *BankAccountService) Close(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	count, err := s.accountRepo.CountTransactions(ctx, accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("INVALID_STATE", "Account with transactions cannot be closed; deactivate it instead")
	}

	return s.accountRepo.Delete(ctx, account.ID)
}

// CheckJournal verifies that the journal sum equals the cached balance
func (s *BankAccountService) CheckJournal(ctx context.Context, accountID uuid.UUID) (*JournalCheckResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sum, err := s.accountRepo.SumTransactionAmounts(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &JournalCheckResponse{
		AccountID:  accountID,
		Balance:    account.Balance,
		JournalSum: sum,
		Consistent: sum.Equal(account.Balance),
	}, nil
}
