package trade

import (
	"context"
	"time"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseFilter defines filtering options for purchase queries
type PurchaseFilter struct {
	shared.Filter
	SupplierID *uuid.UUID
	BranchID   *uuid.UUID
	Status     *PurchaseStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	// FindByID finds a purchase by ID with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByPurchaseNumber finds a purchase by its number
	FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)

	// FindAll finds purchases with filtering
	FindAll(ctx context.Context, filter PurchaseFilter) ([]Purchase, error)

	// FindReceivable finds purchases open for receiving
	FindReceivable(ctx context.Context, filter PurchaseFilter) ([]Purchase, error)

	// GeneratePurchaseNumber generates the next sequential purchase number
	GeneratePurchaseNumber(ctx context.Context) (string, error)

	// Save creates or updates a purchase with its items
	Save(ctx context.Context, purchase *Purchase) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, purchase *Purchase) error

	// Delete soft deletes a purchase
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchases with optional filters
	Count(ctx context.Context, filter PurchaseFilter) (int64, error)
}

// ReturnFilter defines filtering options for return queries
type ReturnFilter struct {
	shared.Filter
	Type       *ReturnType
	SaleID     *uuid.UUID
	PurchaseID *uuid.UUID
	CustomerID *uuid.UUID
	SupplierID *uuid.UUID
	Status     *ReturnStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// ReturnRepository defines the interface for return persistence
type ReturnRepository interface {
	// FindByID finds a return by ID with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Return, error)

	// FindByReturnNumber finds a return by its number
	FindByReturnNumber(ctx context.Context, returnNumber string) (*Return, error)

	// FindBySale finds returns filed against a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]Return, error)

	// FindByPurchase finds returns filed against a purchase
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]Return, error)

	// FindAll finds returns with filtering
	FindAll(ctx context.Context, filter ReturnFilter) ([]Return, error)

	// GenerateReturnNumber generates the next sequential return number
	GenerateReturnNumber(ctx context.Context) (string, error)

	// Save creates or updates a return with its items
	Save(ctx context.Context, ret *Return) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, ret *Return) error

	// Delete removes a return with its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts returns with optional filters
	Count(ctx context.Context, filter ReturnFilter) (int64, error)
}

// SaleFilter defines filtering options for sale queries
type SaleFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds sales with filtering
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, error)

	// Save creates or updates a sale with its items
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Count counts sales with optional filters
	Count(ctx context.Context, filter SaleFilter) (int64, error)
}
