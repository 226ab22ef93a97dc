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

// GormPurchaseRepository implements PurchaseRepository using GORM.
// Trade aggregates carry their own mapping tags and persist directly.
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID with items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	purchase.MarkStored()
	return &purchase, nil
}

// FindByPurchaseNumber finds a purchase by its number
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("purchase_number = ?", purchaseNumber).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	purchase.MarkStored()
	return &purchase, nil
}

// FindAll finds purchases with filtering
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Preload("Items")
	query = r.applyPurchaseFilter(query, filter)

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindReceivable finds purchases open for receiving
func (r *GormPurchaseRepository) FindReceivable(ctx context.Context, filter trade.PurchaseFilter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Preload("Items").
		Where("status IN ?", []trade.PurchaseStatus{trade.PurchaseStatusPending, trade.PurchaseStatusPartiallyReceived})
	query = r.applyPurchaseFilter(query, filter)

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// GeneratePurchaseNumber generates a unique purchase number
func (r *GormPurchaseRepository) GeneratePurchaseNumber(ctx context.Context) (string, error) {
	// Format: PO-YYYYMMDD-XXXXX
	date := time.Now().Format("20060102")
	prefix := fmt.Sprintf("PO-%s-", date)

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Select("purchase_number").
		Where("purchase_number LIKE ?", prefix+"%").
		Order("purchase_number DESC").
		Limit(1).
		Pluck("purchase_number", &maxNumber).Error; err != nil {
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

// Save creates or updates a purchase with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return translateSaveError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(purchase).Error)
}

// SaveWithLock saves with optimistic locking. Items are upserted in the
// same transaction so received quantities move together with the version.
// Columns are named explicitly: a struct update would skip zero values,
// losing cleared remarks and zeroed amounts.
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&trade.Purchase{}).
			Where("id = ? AND version = ?", purchase.ID, purchase.StoredVersion()).
			Updates(map[string]interface{}{
				"subtotal":      purchase.Subtotal,
				"tax_amount":    purchase.TaxAmount,
				"total_amount":  purchase.TotalAmount,
				"paid_amount":   purchase.PaidAmount,
				"status":        purchase.Status,
				"remark":        purchase.Remark,
				"completed_at":  purchase.CompletedAt,
				"cancelled_at":  purchase.CancelledAt,
				"cancel_reason": purchase.CancelReason,
				"version":       purchase.Version,
				"updated_at":    purchase.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
		}
		if len(purchase.Items) > 0 {
			if err := tx.Save(&purchase.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	purchase.MarkStored()
	return nil
}

// Delete soft deletes a purchase
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.PurchaseItem{}, "purchase_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchases with optional filters
func (r *GormPurchaseRepository) Count(ctx context.Context, filter trade.PurchaseFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.Purchase{})
	query = r.applyPurchaseFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyPurchaseFilter applies filter options to the query
func (r *GormPurchaseRepository) applyPurchaseFilter(query *gorm.DB, filter trade.PurchaseFilter) *gorm.DB {
	query = r.applyPurchaseFilterWithoutPagination(query, filter)

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

// applyPurchaseFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseRepository) applyPurchaseFilterWithoutPagination(query *gorm.DB, filter trade.PurchaseFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("purchase_number ILIKE ? OR supplier_name ILIKE ?", searchPattern, searchPattern)
	}

	// Apply specific filters
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
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

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
