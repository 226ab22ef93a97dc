package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return by its ID with items
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Return, error) {
	var ret trade.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	ret.MarkStored()
	return &ret, nil
}

// FindByReturnNumber finds a return by its number
func (r *GormReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*trade.Return, error) {
	var ret trade.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("return_number = ?", returnNumber).
		First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	ret.MarkStored()
	return &ret, nil
}

// FindBySale finds all returns filed against a sale
func (r *GormReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.Return, error) {
	var returns []trade.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindByPurchase finds all returns filed against a purchase
func (r *GormReturnRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]trade.Return, error) {
	var returns []trade.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll finds returns with filtering
func (r *GormReturnRepository) FindAll(ctx context.Context, filter trade.ReturnFilter) ([]trade.Return, error) {
	var returns []trade.Return
	query := r.db.WithContext(ctx).Model(&trade.Return{}).
		Preload("Items")
	query = r.applyReturnFilter(query, filter)

	if err := query.Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// GenerateReturnNumber generates a unique return number
func (r *GormReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	// Format: RT-YYYYMMDD-XXXXX
	date := time.Now().Format("20060102")
	prefix := fmt.Sprintf("RT-%s-", date)

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&trade.Return{}).
		Select("return_number").
		Where("return_number LIKE ?", prefix+"%").
		Order("return_number DESC").
		Limit(1).
		Pluck("return_number", &maxNumber).Error; err != nil {
		return "", err
	}

	var nextNum int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) == 3 {
			fmt.Sscanf(parts[2], "%d", &nextNum)
		}
	}
	nextNum++

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// Save creates or updates a return with its items
func (r *GormReturnRepository) Save(ctx context.Context, ret *trade.Return) error {
	return translateSaveError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ret).Error)
}

// SaveWithLock saves with optimistic locking. Columns are named explicitly
// so nil approval/rejection pointers persist as NULL instead of being
// skipped as zero values.
func (r *GormReturnRepository) SaveWithLock(ctx context.Context, ret *trade.Return) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Return{}).
		Where("id = ? AND version = ?", ret.ID, ret.StoredVersion()).
		Updates(map[string]interface{}{
			"total_refund":     ret.TotalRefund,
			"status":           ret.Status,
			"reason":           ret.Reason,
			"approved_at":      ret.ApprovedAt,
			"approved_by":      ret.ApprovedBy,
			"approval_note":    ret.ApprovalNote,
			"rejected_at":      ret.RejectedAt,
			"rejected_by":      ret.RejectedBy,
			"rejection_reason": ret.RejectionReason,
			"completed_at":     ret.CompletedAt,
			"version":          ret.Version,
			"updated_at":       ret.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	ret.MarkStored()
	return nil
}

// Delete removes a return with its items
func (r *GormReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.ReturnItem{}, "return_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Return{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts returns with optional filters
func (r *GormReturnRepository) Count(ctx context.Context, filter trade.ReturnFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.Return{})
	query = r.applyReturnFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyReturnFilter applies filter options to the query
func (r *GormReturnRepository) applyReturnFilter(query *gorm.DB, filter trade.ReturnFilter) *gorm.DB {
	query = r.applyReturnFilterWithoutPagination(query, filter)

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

// applyReturnFilterWithoutPagination applies filter options without pagination
func (r *GormReturnRepository) applyReturnFilterWithoutPagination(query *gorm.DB, filter trade.ReturnFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR sale_number ILIKE ? OR purchase_number ILIKE ? OR customer_name ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern, searchPattern)
	}

	// Apply specific filters
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	if filter.PurchaseID != nil {
		query = query.Where("purchase_id = ?", *filter.PurchaseID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormReturnRepository implements ReturnRepository
var _ trade.ReturnRepository = (*GormReturnRepository)(nil)
