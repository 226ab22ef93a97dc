package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountPayableRepository implements AccountPayableRepository using GORM
type GormAccountPayableRepository struct {
	db *gorm.DB
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{db: db}
}

// FindByID finds an account payable by its ID
func (r *GormAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Preload("PaymentRecords").
		Preload("Notes").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPayableNumber finds by payable number
func (r *GormAccountPayableRepository) FindByPayableNumber(ctx context.Context, payableNumber string) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Preload("PaymentRecords").
		Preload("Notes").
		Where("payable_number = ?", payableNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySource finds by source document
func (r *GormAccountPayableRepository) FindBySource(ctx context.Context, sourceType finance.PayableSourceType, sourceID uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Preload("PaymentRecords").
		Preload("Notes").
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds account payables with filtering
func (r *GormAccountPayableRepository) FindAll(ctx context.Context, filter finance.AccountPayableFilter) ([]finance.AccountPayable, error) {
	var payableModels []models.AccountPayableModel
	query := r.db.WithContext(ctx).Model(&models.AccountPayableModel{}).
		Preload("PaymentRecords").
		Preload("Notes")
	query = r.applyPayableFilter(query, filter)

	if err := query.Find(&payableModels).Error; err != nil {
		return nil, err
	}
	payables := make([]finance.AccountPayable, len(payableModels))
	for i, model := range payableModels {
		payables[i] = *model.ToDomain()
	}
	return payables, nil
}

// FindOutstanding finds all unsettled payables for a supplier
func (r *GormAccountPayableRepository) FindOutstanding(ctx context.Context, supplierID uuid.UUID) ([]finance.AccountPayable, error) {
	var payableModels []models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Preload("PaymentRecords").
		Preload("Notes").
		Where("supplier_id = ? AND status IN ?", supplierID,
			[]finance.SettlementStatus{finance.SettlementStatusPending, finance.SettlementStatusPartial}).
		Order("created_at ASC").
		Find(&payableModels).Error; err != nil {
		return nil, err
	}
	payables := make([]finance.AccountPayable, len(payableModels))
	for i, model := range payableModels {
		payables[i] = *model.ToDomain()
	}
	return payables, nil
}

// FindOverdue finds all overdue payables
func (r *GormAccountPayableRepository) FindOverdue(ctx context.Context, filter finance.AccountPayableFilter) ([]finance.AccountPayable, error) {
	var payableModels []models.AccountPayableModel
	query := r.db.WithContext(ctx).Model(&models.AccountPayableModel{}).
		Preload("PaymentRecords").
		Preload("Notes").
		Where("due_date < ? AND status IN ?", time.Now(),
			[]finance.SettlementStatus{finance.SettlementStatusPending, finance.SettlementStatusPartial})
	query = r.applyPayableFilter(query, filter)

	if err := query.Find(&payableModels).Error; err != nil {
		return nil, err
	}
	payables := make([]finance.AccountPayable, len(payableModels))
	for i, model := range payableModels {
		payables[i] = *model.ToDomain()
	}
	return payables, nil
}

// Save creates or updates an account payable
func (r *GormAccountPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	model := models.AccountPayableModelFromDomain(payable)
	return translateSaveError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error)
}

// SaveWithLock saves with optimistic locking. Every mutable column is
// named explicitly so cleared pointers (due_date, paid_at) persist as
// NULL, and the guard compares against the version as loaded since a
// unit of work may bump the in-memory version more than once.
func (r *GormAccountPayableRepository) SaveWithLock(ctx context.Context, payable *finance.AccountPayable) error {
	model := models.AccountPayableModelFromDomain(payable)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AccountPayableModel{}).
			Where("id = ? AND version = ?", payable.ID, payable.StoredVersion()).
			Updates(map[string]interface{}{
				"total_amount":       payable.TotalAmount,
				"paid_amount":        payable.PaidAmount,
				"outstanding_amount": payable.OutstandingAmount,
				"status":             payable.Status,
				"due_date":           payable.DueDate,
				"paid_at":            payable.PaidAt,
				"version":            payable.Version,
				"updated_at":         payable.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
		}
		for i := range model.PaymentRecords {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.PaymentRecords[i]).Error; err != nil {
				return err
			}
		}
		for i := range model.Notes {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Notes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	payable.MarkStored()
	return nil
}

// Delete soft deletes an account payable
func (r *GormAccountPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountPayableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts account payables with optional filters
func (r *GormAccountPayableRepository) Count(ctx context.Context, filter finance.AccountPayableFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AccountPayableModel{})
	query = r.applyPayableFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOutstanding calculates total outstanding amount, optionally per supplier
func (r *GormAccountPayableRepository) SumOutstanding(ctx context.Context, supplierID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.db.WithContext(ctx).
		Model(&models.AccountPayableModel{}).
		Select("COALESCE(SUM(outstanding_amount), 0) as total").
		Where("status IN ?", []finance.SettlementStatus{finance.SettlementStatusPending, finance.SettlementStatusPartial})
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GeneratePayableNumber generates a unique payable number
func (r *GormAccountPayableRepository) GeneratePayableNumber(ctx context.Context) (string, error) {
	// Format: AP-YYYYMMDD-XXXXX
	date := time.Now().Format("20060102")
	prefix := fmt.Sprintf("AP-%s-", date)

	// Find the highest number for today
	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.AccountPayableModel{}).
		Select("payable_number").
		Where("payable_number LIKE ?", prefix+"%").
		Order("payable_number DESC").
		Limit(1).
		Pluck("payable_number", &maxNumber).Error; err != nil {
		return "", err
	}

	var nextNum int
	if maxNumber != "" {
		// Extract the number part
		parts := strings.Split(maxNumber, "-")
		if len(parts) == 3 {
			fmt.Sscanf(parts[2], "%d", &nextNum)
		}
	}
	nextNum++

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// applyPayableFilter applies filter options to the query
func (r *GormAccountPayableRepository) applyPayableFilter(query *gorm.DB, filter finance.AccountPayableFilter) *gorm.DB {
	query = r.applyPayableFilterWithoutPagination(query, filter)

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

// applyPayableFilterWithoutPagination applies filter options without pagination
func (r *GormAccountPayableRepository) applyPayableFilterWithoutPagination(query *gorm.DB, filter finance.AccountPayableFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("payable_number ILIKE ? OR supplier_name ILIKE ? OR source_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply specific filters
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", *filter.SourceType)
	}
	if filter.SourceID != nil {
		query = query.Where("source_id = ?", *filter.SourceID)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	if filter.Overdue != nil && *filter.Overdue {
		query = query.Where("due_date < ? AND status IN ?", time.Now(),
			[]finance.SettlementStatus{finance.SettlementStatusPending, finance.SettlementStatusPartial})
	}
	if filter.MinAmount != nil {
		query = query.Where("outstanding_amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("outstanding_amount <= ?", *filter.MaxAmount)
	}

	return query
}

// Ensure GormAccountPayableRepository implements AccountPayableRepository
var _ finance.AccountPayableRepository = (*GormAccountPayableRepository)(nil)
