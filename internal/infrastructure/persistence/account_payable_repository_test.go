package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/goldsmith/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPayableRepo creates a repository backed by sqlmock
func newMockPayableRepo(t *testing.T) (*GormAccountPayableRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAccountPayableRepository(gormDB), mock, mockDB
}

// expectPayableLoad queues the FindByID queries for a stored payable row.
// Preloads run in name order: Notes, then PaymentRecords.
func expectPayableLoad(mock sqlmock.Sqlmock, id uuid.UUID, version int) {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"payable_number", "supplier_id", "supplier_name",
		"source_type", "source_id", "source_number",
		"total_amount", "paid_amount", "outstanding_amount", "status",
	}).AddRow(
		id, now, now, version,
		"AP-20260830-00007", uuid.New(), "CV Logam Mulia",
		"PURCHASE", uuid.New(), "PO-20260830-00003",
		"10000000", "0", "10000000", "PENDING",
	)
	mock.ExpectQuery(`SELECT \* FROM "account_payables" WHERE id =`).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "payable_notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payable_id"}))
	mock.ExpectQuery(`SELECT \* FROM "payable_payment_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payable_id"}))
}

func TestAccountPayableSaveWithLock(t *testing.T) {
	t.Run("guards on the loaded version across several mutations", func(t *testing.T) {
		repo, mock, mockDB := newMockPayableRepo(t)
		defer mockDB.Close()

		id := uuid.New()
		expectPayableLoad(mock, id, 1)

		payable, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)

		// Two mutations in one unit of work bump the in-memory version
		// twice; the WHERE clause must still compare against the stored
		// version, or every uncontended update reports a false conflict
		require.NoError(t, payable.ReviseTotalAmount(valueobject.NewMoneyIDRFromInt(8000000)))
		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, payable.SetDueDate(&due))
		require.Equal(t, 3, payable.Version)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "account_payables" SET`).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), 3, id, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveWithLock(context.Background(), payable)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a conflict when the stored version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockPayableRepo(t)
		defer mockDB.Close()

		id := uuid.New()
		expectPayableLoad(mock, id, 1)

		payable, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		require.NoError(t, payable.ReviseTotalAmount(valueobject.NewMoneyIDRFromInt(12000000)))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "account_payables" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.SaveWithLock(context.Background(), payable)

		require.Error(t, err)
		assert.True(t, shared.IsDomainErrorCode(err, "OPTIMISTIC_LOCK_ERROR"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
