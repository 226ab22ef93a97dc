package persistence

import (
	"fmt"
	"testing"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateSaveError(t *testing.T) {
	t.Run("maps a unique violation to the duplicate error", func(t *testing.T) {
		err := translateSaveError(&pq.Error{Code: pgUniqueViolation, Constraint: "idx_bank_accounts_account_number"})

		assert.True(t, shared.IsDomainErrorCode(err, "ALREADY_EXISTS"))
	})

	t.Run("unwraps before matching", func(t *testing.T) {
		wrapped := fmt.Errorf("insert failed: %w", &pq.Error{Code: pgUniqueViolation})

		assert.True(t, shared.IsDomainErrorCode(translateSaveError(wrapped), "ALREADY_EXISTS"))
	})

	t.Run("passes other driver errors through", func(t *testing.T) {
		original := &pq.Error{Code: "23503"}

		assert.Equal(t, error(original), translateSaveError(original))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateSaveError(nil))
	})
}
