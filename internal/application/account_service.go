package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

// AccountService is the lifecycle manager for accounts and their paired
// credential records. Composite operations sequence complete repository
// calls; each call acquires and releases the single store slot on its
// own, so no two connections are ever open at once.
type AccountService struct {
	Repo   repository.AccountRepository
	Logger *logrus.Logger
}

func NewAccountService(repo repository.AccountRepository, logger *logrus.Logger) *AccountService {
	return &AccountService{Repo: repo, Logger: logger}
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	return a, nil
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	return a, nil
}

func (s *AccountService) List(ctx context.Context, filter *repository.Filter) ([]entity.Account, error) {
	accounts, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	return accounts, nil
}

// Create registers a new account with the default role, following the
// check-then-act protocol: only a confirmed NotFound from the existence
// check permits the insert. Any other check failure propagates unchanged.
// The insert and its dependent credential insert share one store session;
// a racing duplicate that slips past the check is rejected by the store's
// unique constraint and surfaces as Conflict.
func (s *AccountService) Create(ctx context.Context, email, rawPassword string) (*entity.Account, error) {
	_, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: account email %s", apperr.ErrConflict, email)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, s.noteIntegrity(err)
	}

	hash, err := helpers.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.Create(ctx, email, hash); err != nil {
		return nil, err
	}

	// Re-read so the caller observes store-confirmed state, default role
	// included.
	return s.GetByEmail(ctx, email)
}

// UpdateRole changes the account's role, the only mutable account field;
// id and email are immutable post-creation. Returns the freshly re-read
// account rather than the in-memory copy.
func (s *AccountService) UpdateRole(ctx context.Context, id, roleID int64) (*entity.Account, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateRole(ctx, id, roleID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// UpdatePassword re-hashes and overwrites the credential record only; the
// account record is untouched and returned as-is.
func (s *AccountService) UpdatePassword(ctx context.Context, id int64, rawPassword string) (*entity.Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateCredential(ctx, id, hash); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the account after confirming it exists; the repository
// removes the dependent credential row first. Returns the pre-deletion
// snapshot as confirmation.
func (s *AccountService) Delete(ctx context.Context, id int64) (*entity.Account, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

// CheckCredentials resolves the account by email, then compares the raw
// password against the stored hash. NotFound from the lookup propagates;
// a hash mismatch is InvalidCredentials. The login handler collapses both
// into one generic response so callers cannot probe account existence.
func (s *AccountService) CheckCredentials(ctx context.Context, email, rawPassword string) (*entity.Account, error) {
	a, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	cred, err := s.Repo.GetCredential(ctx, a.AccountID)
	if err != nil {
		return nil, s.noteIntegrity(err)
	}
	if !helpers.CheckPassword(cred.HashedPassword, rawPassword) {
		return nil, apperr.ErrInvalidCredentials
	}
	return a, nil
}

// noteIntegrity logs DataIntegrityViolation as a data-quality incident
// before propagating it. Never retried.
func (s *AccountService) noteIntegrity(err error) error {
	if errors.Is(err, apperr.ErrDataIntegrity) && s.Logger != nil {
		s.Logger.WithError(err).Error("account store integrity violation")
	}
	return err
}
