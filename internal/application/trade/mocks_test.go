package trade

import (
	"context"
	"time"

	"github.com/goldsmith/backend/internal/domain/finance"
	"github.com/goldsmith/backend/internal/domain/inventory"
	"github.com/goldsmith/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseRepository is a mock implementation of trade.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*trade.Purchase, error) {
	args := m.Called(ctx, purchaseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter trade.PurchaseFilter) ([]trade.Purchase, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindReceivable(ctx context.Context, filter trade.PurchaseFilter) ([]trade.Purchase, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) GeneratePurchaseNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Count(ctx context.Context, filter trade.PurchaseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockReturnRepository is a mock implementation of trade.ReturnRepository
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*trade.Return, error) {
	args := m.Called(ctx, returnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Return), args.Error(1)
}

func (m *MockReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]trade.Return, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]trade.Return, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Return), args.Error(1)
}

func (m *MockReturnRepository) FindAll(ctx context.Context, filter trade.ReturnFilter) ([]trade.Return, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Return), args.Error(1)
}

func (m *MockReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReturnRepository) Save(ctx context.Context, ret *trade.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepository) SaveWithLock(ctx context.Context, ret *trade.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReturnRepository) Count(ctx context.Context, filter trade.ReturnFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*trade.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter trade.SaleFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) GetStockLevel(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, productID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockRepository) AdjustQuantity(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, productID, branchID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) AdjustProductQuantity(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

func (m *MockStockRepository) GetProductStock(ctx context.Context, productID uuid.UUID) (*inventory.ProductStock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ProductStock), args.Error(1)
}

func (m *MockStockRepository) RecordMovement(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) FindMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockRepository) SumMovements(ctx context.Context, productID uuid.UUID, branchID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, branchID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAccountPayableRepository is a mock implementation of finance.AccountPayableRepository
type MockAccountPayableRepository struct {
	mock.Mock
}

func (m *MockAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindByPayableNumber(ctx context.Context, payableNumber string) (*finance.AccountPayable, error) {
	args := m.Called(ctx, payableNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindBySource(ctx context.Context, sourceType finance.PayableSourceType, sourceID uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindAll(ctx context.Context, filter finance.AccountPayableFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) GeneratePayableNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAccountPayableRepository) FindOutstanding(ctx context.Context, supplierID uuid.UUID) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) FindOverdue(ctx context.Context, filter finance.AccountPayableFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockAccountPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) SaveWithLock(ctx context.Context, payable *finance.AccountPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountPayableRepository) Count(ctx context.Context, filter finance.AccountPayableFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountPayableRepository) SumOutstanding(ctx context.Context, supplierID *uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockBankAccountRepository is a mock implementation of finance.BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByIDWithTransactions(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*finance.BankAccount, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAll(ctx context.Context, filter finance.BankAccountFilter) ([]finance.BankAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindTransactions(ctx context.Context, accountID uuid.UUID, filter finance.BankTransactionFilter) ([]finance.BankTransaction, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BankTransaction), args.Error(1)
}

func (m *MockBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) SaveWithLock(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) SaveWithTransaction(ctx context.Context, account *finance.BankAccount, tx *finance.BankTransaction) error {
	args := m.Called(ctx, account, tx)
	return args.Error(0)
}

func (m *MockBankAccountRepository) MarkReconciled(ctx context.Context, accountID uuid.UUID, txIDs []uuid.UUID, date time.Time) error {
	args := m.Called(ctx, accountID, txIDs, date)
	return args.Error(0)
}

func (m *MockBankAccountRepository) CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankAccountRepository) SumTransactionAmounts(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Count(ctx context.Context, filter finance.BankAccountFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
