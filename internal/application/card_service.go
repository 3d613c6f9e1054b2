package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
)

// CardService is the lifecycle manager for cards. Title is the natural
// key; subtype join rows are dependents written after the card insert and
// removed before the card delete.
type CardService struct {
	Repo   repository.CardRepository
	Logger *logrus.Logger
}

func NewCardService(repo repository.CardRepository, logger *logrus.Logger) *CardService {
	return &CardService{Repo: repo, Logger: logger}
}

func (s *CardService) GetByID(ctx context.Context, id int64) (*entity.Card, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	return c, nil
}

func (s *CardService) GetByTitle(ctx context.Context, title string) (*entity.Card, error) {
	c, err := s.Repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	return c, nil
}

func (s *CardService) List(ctx context.Context, filter *repository.Filter) ([]entity.Card, error) {
	cards, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	return cards, nil
}

// Create follows the check-then-act protocol on the title: only a
// confirmed NotFound permits the insert; any other existence-check
// failure propagates unchanged. The store's unique constraint backstops
// the race between the check and the insert.
func (s *CardService) Create(ctx context.Context, c *entity.Card) (*entity.Card, error) {
	_, err := s.Repo.GetByTitle(ctx, c.Title)
	if err == nil {
		return nil, fmt.Errorf("%w: card title %q", apperr.ErrConflict, c.Title)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, s.noteIntegrity(err)
	}

	id, err := s.Repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Update mutates only the mutable card fields; title and id from the
// candidate are ignored, whatever the caller sent. Returns the freshly
// re-read card.
func (s *CardService) Update(ctx context.Context, candidate *entity.Card) (*entity.Card, error) {
	current, err := s.GetByID(ctx, candidate.CardID)
	if err != nil {
		return nil, err
	}

	next := *current
	if candidate.ManaCost != 0 {
		next.ManaCost = candidate.ManaCost
	}
	if candidate.Power != "" {
		next.Power = candidate.Power
	}
	if candidate.Toughness != "" {
		next.Toughness = candidate.Toughness
	}
	if candidate.Link != "" {
		next.Link = candidate.Link
	}
	if candidate.Ability != "" {
		next.Ability = candidate.Ability
	}
	if candidate.FlavorText != "" {
		next.FlavorText = candidate.FlavorText
	}
	if candidate.CardStatus != "" {
		next.CardStatus = candidate.CardStatus
	}

	if err := s.Repo.Update(ctx, &next); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, current.CardID)
}

// Delete removes the card after confirming it exists; the repository
// removes the dependent join rows first. Returns the pre-deletion
// snapshot.
func (s *CardService) Delete(ctx context.Context, id int64) (*entity.Card, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CardService) noteIntegrity(err error) error {
	if errors.Is(err, apperr.ErrDataIntegrity) && s.Logger != nil {
		s.Logger.WithError(err).Error("card store integrity violation")
	}
	return err
}
