package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goldsmith/backend/internal/domain/inventory"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
// Quantity changes go through a single atomic UPDATE so concurrent
// receipts and restocks never lose increments to a read-then-write race.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// GetStockLevel returns the stock record for a product at a branch,
// creating a zero record if none exists
func (r *GormStockRepository) GetStockLevel(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	err := r.branchScope(r.db.WithContext(ctx), branchID).
		Where("product_id = ?", productID).
		First(&level).Error
	if err == nil {
		return &level, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := inventory.NewStockLevel(productID, branchID)
	if err != nil {
		return nil, err
	}
	// A concurrent request may create the row first; the conflict clause
	// keeps theirs, then we re-read.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, err
	}
	if err := r.branchScope(r.db.WithContext(ctx), branchID).
		Where("product_id = ?", productID).
		First(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

// FindByProduct returns all stock records for a product across branches
func (r *GormStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// AdjustQuantity applies a signed delta as a single atomic increment.
// The guard quantity + delta >= 0 lives in the WHERE clause: a decrement
// that would go negative matches no row and fails without touching stock.
func (r *GormStockRepository) AdjustQuantity(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	// Make sure the row exists before incrementing it
	if _, err := r.GetStockLevel(ctx, productID, branchID); err != nil {
		return err
	}

	query := r.branchScope(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), branchID).
		Where("product_id = ?", productID)
	if delta.IsNegative() {
		query = query.Where("quantity + ? >= 0", delta)
	}
	result := query.Updates(map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", delta),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock on hand for this adjustment")
	}
	return nil
}

// GetProductStock returns the product total, creating a zero record if
// none exists
func (r *GormStockRepository) GetProductStock(ctx context.Context, productID uuid.UUID) (*inventory.ProductStock, error) {
	var total inventory.ProductStock
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&total).Error
	if err == nil {
		return &total, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := inventory.NewProductStock(productID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&total).Error; err != nil {
		return nil, err
	}
	return &total, nil
}

// AdjustProductQuantity applies a signed delta to the product total with
// the same atomic increment and non-negative guard as AdjustQuantity.
func (r *GormStockRepository) AdjustProductQuantity(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	if _, err := r.GetProductStock(ctx, productID); err != nil {
		return err
	}

	query := r.db.WithContext(ctx).Model(&inventory.ProductStock{}).
		Where("product_id = ?", productID)
	if delta.IsNegative() {
		query = query.Where("quantity + ? >= 0", delta)
	}
	result := query.Updates(map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", delta),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock on hand for this adjustment")
	}
	return nil
}

// RecordMovement appends a movement to the audit trail
func (r *GormStockRepository) RecordMovement(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindMovements lists movements with filtering
func (r *GormStockRepository) FindMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{})
	query = r.applyMovementFilter(query, filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumMovements returns the signed movement sum for a product at a branch
func (r *GormStockRepository) SumMovements(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.branchScope(r.db.WithContext(ctx).Model(&inventory.StockMovement{}), branchID).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("product_id = ?", productID)
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// branchScope filters on branch_id, treating nil as the central stock row
func (r *GormStockRepository) branchScope(query *gorm.DB, branchID *uuid.UUID) *gorm.DB {
	if branchID == nil {
		return query.Where("branch_id IS NULL")
	}
	return query.Where("branch_id = ?", *branchID)
}

// applyMovementFilter applies filter options to the query
func (r *GormStockRepository) applyMovementFilter(query *gorm.DB, filter inventory.MovementFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
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
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("remark ILIKE ? OR source_type ILIKE ?", searchPattern, searchPattern)
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
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
