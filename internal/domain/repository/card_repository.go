package repository

import (
	"context"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
)

// CardRepository defines the store operations for cards and their subtype
// join rows. Error semantics match AccountRepository.
type CardRepository interface {
	GetByTitle(ctx context.Context, title string) (*entity.Card, error)
	GetByID(ctx context.Context, id int64) (*entity.Card, error)
	List(ctx context.Context, filter *Filter) ([]entity.Card, error)

	// Create inserts the card row and its subtype join rows in one store
	// session, returning the assigned id.
	Create(ctx context.Context, c *entity.Card) (int64, error)

	// Update writes the mutable card fields only; title and id are left
	// untouched by the statement.
	Update(ctx context.Context, c *entity.Card) error

	// Delete removes the subtype join rows before the card row.
	Delete(ctx context.Context, id int64) error
}
