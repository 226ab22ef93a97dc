package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID without loading the journal
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	var model models.BankAccountModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDWithTransactions finds a bank account with its journal loaded
func (r *GormBankAccountRepository) FindByIDWithTransactions(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	var model models.BankAccountModel
	if err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at DESC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccountNumber finds a bank account by its account number
func (r *GormBankAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*finance.BankAccount, error) {
	var model models.BankAccountModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", accountNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds bank accounts with filtering
func (r *GormBankAccountRepository) FindAll(ctx context.Context, filter finance.BankAccountFilter) ([]finance.BankAccount, error) {
	var accountModels []models.BankAccountModel
	query := r.db.WithContext(ctx).Model(&models.BankAccountModel{})
	query = r.applyAccountFilter(query, filter)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]finance.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// FindTransactions lists ledger entries for an account
func (r *GormBankAccountRepository) FindTransactions(ctx context.Context, accountID uuid.UUID, filter finance.BankTransactionFilter) ([]finance.BankTransaction, error) {
	var txModels []models.BankTransactionModel
	query := r.db.WithContext(ctx).Model(&models.BankTransactionModel{}).
		Where("account_id = ?", accountID)
	query = r.applyTransactionFilter(query, filter)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	transactions := make([]finance.BankTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	model := models.BankAccountModelFromDomain(account)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// accountUpdateColumns lists every mutable column explicitly. A struct
// update would make gorm skip zero values, silently losing active=false
// and cleared remarks.
func accountUpdateColumns(account *finance.BankAccount) map[string]interface{} {
	return map[string]interface{}{
		"name":       account.Name,
		"bank_name":  account.BankName,
		"currency":   string(account.Currency),
		"balance":    account.Balance,
		"active":     account.Active,
		"remark":     account.Remark,
		"version":    account.Version,
		"updated_at": account.UpdatedAt,
	}
}

// SaveWithLock saves with optimistic locking. The guard compares against
// the version as loaded, so several domain mutations before one save
// still hit the stored row.
func (r *GormBankAccountRepository) SaveWithLock(ctx context.Context, account *finance.BankAccount) error {
	result := r.db.WithContext(ctx).
		Model(&models.BankAccountModel{}).
		Where("id = ? AND version = ?", account.ID, account.StoredVersion()).
		Updates(accountUpdateColumns(account))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	account.MarkStored()
	return nil
}

// SaveWithTransaction persists the account's new balance and appends the
// given ledger entry in a single database transaction. The version guard
// ensures a concurrent posting cannot overwrite the balance: the loser of
// the race gets an optimistic lock error and must re-read and retry.
func (r *GormBankAccountRepository) SaveWithTransaction(ctx context.Context, account *finance.BankAccount, bankTx *finance.BankTransaction) error {
	txModel := models.BankTransactionModelFromDomain(bankTx)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BankAccountModel{}).
			Where("id = ? AND version = ?", account.ID, account.StoredVersion()).
			Updates(accountUpdateColumns(account))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
		}
		return tx.Create(txModel).Error
	})
	if err != nil {
		return err
	}
	account.MarkStored()
	return nil
}

// MarkReconciled flips the reconciled flag on the given ledger entries
func (r *GormBankAccountRepository) MarkReconciled(ctx context.Context, accountID uuid.UUID, txIDs []uuid.UUID, date time.Time) error {
	if len(txIDs) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.BankTransactionModel{}).
		Where("account_id = ? AND id IN ?", accountID, txIDs).
		Updates(map[string]interface{}{
			"reconciled":      true,
			"reconciled_date": date,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(txIDs)) {
		return shared.ErrNotFound
	}
	return nil
}

// CountTransactions counts ledger entries for an account
func (r *GormBankAccountRepository) CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BankTransactionModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTransactionAmounts returns the signed sum of the journal for an account.
// A healthy account satisfies opening balance + sum = current balance.
func (r *GormBankAccountRepository) SumTransactionAmounts(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.BankTransactionModel{}).
		Select("COALESCE(SUM(signed_amount), 0) as total").
		Where("account_id = ?", accountID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Delete soft deletes a bank account
func (r *GormBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BankAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bank accounts with optional filters
func (r *GormBankAccountRepository) Count(ctx context.Context, filter finance.BankAccountFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BankAccountModel{})
	query = r.applyAccountFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyAccountFilter applies filter options to the query
func (r *GormBankAccountRepository) applyAccountFilter(query *gorm.DB, filter finance.BankAccountFilter) *gorm.DB {
	query = r.applyAccountFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyAccountFilterWithoutPagination applies filter options without pagination
func (r *GormBankAccountRepository) applyAccountFilterWithoutPagination(query *gorm.DB, filter finance.BankAccountFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("account_number ILIKE ? OR name ILIKE ? OR bank_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply specific filters
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.BankName != nil {
		query = query.Where("bank_name = ?", *filter.BankName)
	}

	return query
}

// applyTransactionFilter applies ledger entry filter options to the query
func (r *GormBankAccountRepository) applyTransactionFilter(query *gorm.DB, filter finance.BankTransactionFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Reconciled != nil {
		query = query.Where("reconciled = ?", *filter.Reconciled)
	}
	if filter.FromDate != nil {
		query = query.Where("occurred_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("occurred_at <= ?", *filter.ToDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR remark ILIKE ?", searchPattern, searchPattern)
	}

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("occurred_at DESC")
	}

	return query
}

// Ensure GormBankAccountRepository implements BankAccountRepository
var _ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)
