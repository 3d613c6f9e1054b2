package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
	"github.com/mtgbinder/mtgbinder-api/pkg/validation"
)

// The store returns one flat row per card-subtype pair; collectCards
// reassembles the nested card shape from the ordered row set.
const cardSelect = `
	SELECT c.card_id, c.title, c.mana_cost, c.power, c.toughness,
		c.link, c.ability, c.flavor_text, c.card_status,
		s.subtype_id, s.subtitle
	FROM cards c
		LEFT JOIN card_subtypes cs ON cs.card_id = c.card_id
		LEFT JOIN subtypes s ON s.subtype_id = cs.subtype_id
`

const cardOrder = " ORDER BY c.card_id, s.subtype_id"

type CardRepository struct {
	db *DB
}

func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) GetByTitle(ctx context.Context, title string) (*entity.Card, error) {
	return r.getOne(ctx, "WHERE c.title = $1", title)
}

func (r *CardRepository) GetByID(ctx context.Context, id int64) (*entity.Card, error) {
	return r.getOne(ctx, "WHERE c.card_id = $1", id)
}

func (r *CardRepository) getOne(ctx context.Context, where string, arg any) (*entity.Card, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, cardSelect+where+cardOrder, arg)
	if err != nil {
		return nil, err
	}
	cards, err := collectCards(rows)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, apperr.ErrNotFound
	}
	if len(cards) > 1 {
		return nil, fmt.Errorf("%w: multiple cards share one key", apperr.ErrDataIntegrity)
	}
	return &cards[0], nil
}

func (r *CardRepository) List(ctx context.Context, filter *repository.Filter) ([]entity.Card, error) {
	query := cardSelect
	var args []any
	if filter != nil {
		switch filter.Field {
		case "title":
			query += "WHERE c.title = $1"
		case "manacost":
			query += "WHERE c.mana_cost = $1"
		case "cardstatus":
			query += "WHERE c.card_status = $1"
		default:
			return nil, fmt.Errorf("%w: unrecognized card filter %q", apperr.ErrValidation, filter.Field)
		}
		args = append(args, filter.Value)
	}
	query += cardOrder

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

// collectCards groups the flat joined rows by card id, attaching subtype
// rows to their card, then validates every reassembled card.
func collectCards(rows pgx.Rows) ([]entity.Card, error) {
	defer rows.Close()

	cards := []entity.Card{}
	for rows.Next() {
		var (
			c          entity.Card
			power      *string
			toughness  *string
			ability    *string
			flavorText *string
			subtypeID  *int64
			subtitle   *string
		)
		err := rows.Scan(&c.CardID, &c.Title, &c.ManaCost, &power, &toughness,
			&c.Link, &ability, &flavorText, &c.CardStatus, &subtypeID, &subtitle)
		if err != nil {
			return nil, err
		}
		c.Power = deref(power)
		c.Toughness = deref(toughness)
		c.Ability = deref(ability)
		c.FlavorText = deref(flavorText)

		last := len(cards) - 1
		if last < 0 || cards[last].CardID != c.CardID {
			cards = append(cards, c)
			last++
		}
		if subtypeID != nil {
			cards[last].Subtypes = append(cards[last].Subtypes, entity.Subtype{
				SubtypeID: *subtypeID,
				Subtitle:  deref(subtitle),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cards {
		if err := validation.Struct(&cards[i]); err != nil {
			return nil, fmt.Errorf("%w: card %d fails schema: %v", apperr.ErrDataIntegrity, cards[i].CardID, err)
		}
	}
	return cards, nil
}

// Create inserts the card and its subtype join rows in one transaction on
// the single acquired connection.
func (r *CardRepository) Create(ctx context.Context, c *entity.Card) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO cards (title, mana_cost, power, toughness, link, ability, flavor_text, card_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING card_id
	`, c.Title, c.ManaCost, nullStr(c.Power), nullStr(c.Toughness),
		c.Link, nullStr(c.Ability), nullStr(c.FlavorText), c.CardStatus).Scan(&id)
	if err != nil {
		return 0, writeError("insert card", err)
	}

	for _, st := range c.Subtypes {
		_, err = tx.Exec(ctx, `
			INSERT INTO card_subtypes (card_id, subtype_id)
			VALUES ($1, $2)
		`, id, st.SubtypeID)
		if err != nil {
			return 0, writeError("insert card subtype", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, writeError("commit card create", err)
	}
	return id, nil
}

// Update writes the mutable columns only; title and card_id never appear
// in the SET clause.
func (r *CardRepository) Update(ctx context.Context, c *entity.Card) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	res, err := conn.Exec(ctx, `
		UPDATE cards
		SET mana_cost = $1, power = $2, toughness = $3, link = $4,
			ability = $5, flavor_text = $6, card_status = $7
		WHERE card_id = $8
	`, c.ManaCost, nullStr(c.Power), nullStr(c.Toughness), c.Link,
		nullStr(c.Ability), nullStr(c.FlavorText), c.CardStatus, c.CardID)
	if err != nil {
		return writeError("update card", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the dependent join rows before the card row.
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM card_subtypes WHERE card_id = $1`, id); err != nil {
		return writeError("delete card subtypes", err)
	}
	res, err := tx.Exec(ctx, `DELETE FROM cards WHERE card_id = $1`, id)
	if err != nil {
		return writeError("delete card", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return writeError("commit card delete", err)
	}
	return nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.CardRepository = (*CardRepository)(nil)
