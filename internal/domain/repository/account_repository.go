package repository

import (
	"context"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
)

// AccountRepository defines the store operations for accounts and their
// paired credential records. Read methods return apperr.ErrNotFound for a
// missing record and apperr.ErrDataIntegrity when the store violates a
// cardinality or shape invariant; write methods translate unique-key
// violations to apperr.ErrConflict and other statement failures to
// apperr.ErrPersistence.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	List(ctx context.Context, filter *Filter) ([]entity.Account, error)

	// Create inserts the account row and its dependent credential row in
	// one store session, returning the assigned id.
	Create(ctx context.Context, email, hashedPassword string) (int64, error)

	// UpdateRole writes the only mutable account field.
	UpdateRole(ctx context.Context, id, roleID int64) error

	GetCredential(ctx context.Context, accountID int64) (*entity.Credential, error)
	UpdateCredential(ctx context.Context, accountID int64, hashedPassword string) error

	// Delete removes the credential row before the account row.
	Delete(ctx context.Context, id int64) error
}
