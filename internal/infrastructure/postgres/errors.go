package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
)

// pgUniqueViolation is SQLSTATE 23505.
const pgUniqueViolation = "23505"

// writeError translates a failed write statement into an application
// error kind. Unique-key violations become Conflict: the application
// checks uniqueness before inserting, but the constraint is the
// authoritative guard when two creates race past the check.
func writeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", apperr.ErrConflict, op)
	}
	return fmt.Errorf("%w: %s: %v", apperr.ErrPersistence, op, err)
}
