package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
)

type fakeCardRepo struct {
	nextID int64
	cards  map[int64]*entity.Card
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{nextID: 1, cards: map[int64]*entity.Card{}}
}

func (f *fakeCardRepo) GetByTitle(_ context.Context, title string) (*entity.Card, error) {
	for _, c := range f.cards {
		if c.Title == title {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: card title %q", apperr.ErrNotFound, title)
}

func (f *fakeCardRepo) GetByID(_ context.Context, id int64) (*entity.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: card %d", apperr.ErrNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCardRepo) List(_ context.Context, filter *repository.Filter) ([]entity.Card, error) {
	var out []entity.Card
	for _, c := range f.cards {
		if filter != nil {
			switch filter.Field {
			case "title":
				if c.Title != filter.Value {
					continue
				}
			case "manacost":
				if c.ManaCost != filter.Value {
					continue
				}
			case "cardstatus":
				if c.CardStatus != filter.Value {
					continue
				}
			default:
				return nil, fmt.Errorf("%w: unrecognized filter %q", apperr.ErrValidation, filter.Field)
			}
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCardRepo) Create(_ context.Context, c *entity.Card) (int64, error) {
	for _, existing := range f.cards {
		if existing.Title == c.Title {
			return 0, fmt.Errorf("%w: card title %q", apperr.ErrConflict, c.Title)
		}
	}
	id := f.nextID
	f.nextID++
	cp := *c
	cp.CardID = id
	f.cards[id] = &cp
	return id, nil
}

func (f *fakeCardRepo) Update(_ context.Context, c *entity.Card) error {
	current, ok := f.cards[c.CardID]
	if !ok {
		return fmt.Errorf("%w: card %d", apperr.ErrNotFound, c.CardID)
	}
	next := *c
	// the statement never touches title or id
	next.Title = current.Title
	next.Subtypes = current.Subtypes
	f.cards[c.CardID] = &next
	return nil
}

func (f *fakeCardRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.cards[id]; !ok {
		return fmt.Errorf("%w: card %d", apperr.ErrNotFound, id)
	}
	delete(f.cards, id)
	return nil
}

func sampleCard(title string) *entity.Card {
	return &entity.Card{
		Title:      title,
		ManaCost:   3,
		Power:      "2",
		Toughness:  "2",
		Link:       "https://cards.example.com/" + title,
		Ability:    "Flying",
		CardStatus: "owned",
		Subtypes:   []entity.Subtype{{SubtypeID: 1}},
	}
}

func TestCardService_CreateAndFetch(t *testing.T) {
	t.Parallel()
	svc := NewCardService(newFakeCardRepo(), nil)

	created, err := svc.Create(context.Background(), sampleCard("Storm Crow"))
	require.NoError(t, err)
	assert.NotZero(t, created.CardID)
	assert.Equal(t, "Storm Crow", created.Title)

	got, err := svc.GetByID(context.Background(), created.CardID)
	require.NoError(t, err)
	assert.Equal(t, created.CardID, got.CardID)
}

func TestCardService_CreateDuplicateTitleConflicts(t *testing.T) {
	t.Parallel()
	svc := NewCardService(newFakeCardRepo(), nil)

	_, err := svc.Create(context.Background(), sampleCard("Storm Crow"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), sampleCard("Storm Crow"))
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestCardService_UpdateIgnoresTitleAndMergesFields(t *testing.T) {
	t.Parallel()
	svc := NewCardService(newFakeCardRepo(), nil)

	created, err := svc.Create(context.Background(), sampleCard("Storm Crow"))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &entity.Card{
		CardID:     created.CardID,
		Title:      "Renamed Crow",
		CardStatus: "wanted",
	})
	require.NoError(t, err)

	// title is immutable; omitted fields keep their stored values
	assert.Equal(t, "Storm Crow", updated.Title)
	assert.Equal(t, "wanted", updated.CardStatus)
	assert.Equal(t, created.ManaCost, updated.ManaCost)
	assert.Equal(t, created.Ability, updated.Ability)
}

func TestCardService_UpdateMissingCard(t *testing.T) {
	t.Parallel()
	svc := NewCardService(newFakeCardRepo(), nil)

	_, err := svc.Update(context.Background(), &entity.Card{CardID: 77, CardStatus: "wanted"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCardService_DeleteReturnsSnapshot(t *testing.T) {
	t.Parallel()
	svc := NewCardService(newFakeCardRepo(), nil)

	created, err := svc.Create(context.Background(), sampleCard("Storm Crow"))
	require.NoError(t, err)

	snap, err := svc.Delete(context.Background(), created.CardID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, snap.Title)

	_, err = svc.GetByID(context.Background(), created.CardID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCardService_ListFilters(t *testing.T) {
	t.Parallel()
	svc := NewCardService(newFakeCardRepo(), nil)

	_, err := svc.Create(context.Background(), sampleCard("Storm Crow"))
	require.NoError(t, err)
	other := sampleCard("Grizzly Bears")
	other.ManaCost = 2
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	cheap, err := svc.List(context.Background(), &repository.Filter{Field: "manacost", Value: 2})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Grizzly Bears", cheap[0].Title)

	_, err = svc.List(context.Background(), &repository.Filter{Field: "artist", Value: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
