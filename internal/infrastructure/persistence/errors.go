package persistence

import (
	"errors"

	"github.com/goldsmith/backend/internal/domain/shared"
	"github.com/lib/pq"
)

// pgUniqueViolation is the postgres error code for a duplicate key.
const pgUniqueViolation = "23505"

// translateSaveError maps a duplicate-key failure onto the domain
// duplicate error. The application layer checks for an existing number
// before inserting, but two concurrent creates can both pass that check;
// the unique index is the arbiter, and the loser sees ALREADY_EXISTS
// instead of a raw driver error.
func translateSaveError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return shared.ErrAlreadyExists
	}
	return err
}
