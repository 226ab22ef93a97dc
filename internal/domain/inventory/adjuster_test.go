package inventory

import (
	"context"
	"testing"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockRepository is a mock implementation of StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) GetStockLevel(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (*StockLevel, error) {
	args := m.Called(ctx, productID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StockLevel), args.Error(1)
}

func (m *MockStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockLevel, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StockLevel), args.Error(1)
}

func (m *MockStockRepository) AdjustQuantity(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, productID, branchID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) AdjustProductQuantity(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductStock), args.Error(1)
}

func (m *MockStockRepository) RecordMovement(ctx context.Context, movement *StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) FindMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StockMovement), args.Error(1)
}

func (m *MockStockRepository) SumMovements(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, branchID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestAdjuster_Credit(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	sourceID := uuid.New()

	t.Run("credits quantity and records movement", func(t *testing.T) {
		repo := new(MockStockRepository)
		adjuster := NewAdjuster(repo)

		repo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), decimal.NewFromInt(4)).Return(nil)
		repo.On("AdjustProductQuantity", ctx, productID, decimal.NewFromInt(4)).Return(nil)
		repo.On("RecordMovement", ctx, mock.MatchedBy(func(mv *StockMovement) bool {
			return mv.ProductID == productID &&
				mv.Type == MovementTypePurchaseReceipt &&
				mv.Quantity.Equal(decimal.NewFromInt(4)) &&
				mv.SourceID != nil && *mv.SourceID == sourceID
		})).Return(nil)

		err := adjuster.Credit(ctx, productID, nil, decimal.NewFromInt(4), MovementTypePurchaseReceipt, "Purchase", &sourceID, "")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("non-positive credit is rejected before touching the store", func(t *testing.T) {
		repo := new(MockStockRepository)
		adjuster := NewAdjuster(repo)

		err := adjuster.Credit(ctx, productID, nil, decimal.Zero, MovementTypePurchaseReceipt, "Purchase", &sourceID, "")

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_QUANTITY"))
		repo.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdjuster_Debit(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("debits with a negative delta", func(t *testing.T) {
		repo := new(MockStockRepository)
		adjuster := NewAdjuster(repo)

		repo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), decimal.NewFromInt(-2)).Return(nil)
		repo.On("AdjustProductQuantity", ctx, productID, decimal.NewFromInt(-2)).Return(nil)
		repo.On("RecordMovement", ctx, mock.MatchedBy(func(mv *StockMovement) bool {
			return mv.Quantity.Equal(decimal.NewFromInt(-2)) && mv.Type == MovementTypeSale
		})).Return(nil)

		err := adjuster.Debit(ctx, productID, nil, decimal.NewFromInt(2), MovementTypeSale, "Sale", nil, "")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("insufficient stock error propagates without a movement", func(t *testing.T) {
		repo := new(MockStockRepository)
		adjuster := NewAdjuster(repo)

		insufficient := shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock on hand")
		repo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), decimal.NewFromInt(-10)).Return(insufficient)

		err := adjuster.Debit(ctx, productID, nil, decimal.NewFromInt(10), MovementTypeSale, "Sale", nil, "")

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INSUFFICIENT_STOCK"))
		repo.AssertNotCalled(t, "AdjustProductQuantity", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything)
	})

	t.Run("failed product total aborts before the movement", func(t *testing.T) {
		repo := new(MockStockRepository)
		adjuster := NewAdjuster(repo)

		repo.On("AdjustQuantity", ctx, productID, (*uuid.UUID)(nil), decimal.NewFromInt(-3)).Return(nil)
		repo.On("AdjustProductQuantity", ctx, productID, decimal.NewFromInt(-3)).
			Return(shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock on hand"))

		err := adjuster.Debit(ctx, productID, nil, decimal.NewFromInt(3), MovementTypeSale, "Sale", nil, "")

		require.Error(t, err)
		repo.AssertNotCalled(t, "RecordMovement", mock.Anything, mock.Anything)
	})
}

func TestNewStockMovement(t *testing.T) {
	productID := uuid.New()

	t.Run("zero quantity is rejected", func(t *testing.T) {
		_, err := NewStockMovement(productID, nil, MovementTypeManual, decimal.Zero, "", nil, "")
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_QUANTITY"))
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := NewStockMovement(productID, nil, MovementType("TELEPORT"), decimal.NewFromInt(1), "", nil, "")
		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "INVALID_MOVEMENT_TYPE"))
	})

	t.Run("valid movement keeps the signed delta", func(t *testing.T) {
		mv, err := NewStockMovement(productID, nil, MovementTypeReturnRestock, decimal.NewFromInt(3), "Return", nil, "")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3).Equal(mv.Quantity))
	})
}
