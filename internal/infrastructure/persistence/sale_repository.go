package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID with items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	sale.MarkStored()
	return &sale, nil
}

// FindBySaleNumber finds a sale by its number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_number = ?", saleNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	sale.MarkStored()
	return &sale, nil
}

// FindAll finds sales with filtering
func (r *GormSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.db.WithContext(ctx).Model(&trade.Sale{}).
		Preload("Items")
	query = r.applySaleFilter(query, filter)

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Save creates or updates a sale with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return translateSaveError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error)
}

// SaveWithLock saves with optimistic locking. Only the refund columns
// move after a sale is recorded, so they are named explicitly.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *trade.Sale) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Sale{}).
		Where("id = ? AND version = ?", sale.ID, sale.StoredVersion()).
		Updates(map[string]interface{}{
			"refunded_amount": sale.RefundedAmount,
			"refund_status":   sale.RefundStatus,
			"version":         sale.Version,
			"updated_at":      sale.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The record has been modified by another transaction")
	}
	sale.MarkStored()
	return nil
}

// Count counts sales with optional filters
func (r *GormSaleRepository) Count(ctx context.Context, filter trade.SaleFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.Sale{})
	query = r.applySaleFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applySaleFilter applies filter options to the query
func (r *GormSaleRepository) applySaleFilter(query *gorm.DB, filter trade.SaleFilter) *gorm.DB {
	query = r.applySaleFilterWithoutPagination(query, filter)

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
		query = query.Order("sold_at DESC")
	}

	return query
}

// applySaleFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applySaleFilterWithoutPagination(query *gorm.DB, filter trade.SaleFilter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?", searchPattern, searchPattern)
	}

	// Apply specific filters
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.FromDate != nil {
		query = query.Where("sold_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("sold_at <= ?", *filter.ToDate)
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
