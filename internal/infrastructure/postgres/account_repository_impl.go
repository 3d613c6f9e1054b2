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

const accountSelect = `
	SELECT ac.account_id, ac.email, r.role_id, r.role_name
	FROM accounts ac
		INNER JOIN roles r ON r.role_id = ac.role_id
`

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getOne(ctx, "WHERE ac.email = $1", email)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	return r.getOne(ctx, "WHERE ac.account_id = $1", id)
}

// getOne runs the joined select with one predicate and enforces the
// exactly-one contract: zero rows is NotFound, more than one means the
// store broke a uniqueness invariant.
func (r *AccountRepository) getOne(ctx context.Context, where string, arg any) (*entity.Account, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, accountSelect+where, arg)
	if err != nil {
		return nil, err
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperr.ErrNotFound
	}
	if len(accounts) > 1 {
		return nil, fmt.Errorf("%w: multiple accounts share one key", apperr.ErrDataIntegrity)
	}
	return &accounts[0], nil
}

func (r *AccountRepository) List(ctx context.Context, filter *repository.Filter) ([]entity.Account, error) {
	query := accountSelect
	var args []any
	if filter != nil {
		switch filter.Field {
		case "email":
			query += "WHERE ac.email = $1"
		case "roleid":
			query += "WHERE ac.role_id = $1"
		default:
			return nil, fmt.Errorf("%w: unrecognized account filter %q", apperr.ErrValidation, filter.Field)
		}
		args = append(args, filter.Value)
	}
	query += " ORDER BY ac.account_id"

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

// collectAccounts maps result rows into accounts, validating each one. A
// row that no longer matches the account schema is a data-quality signal,
// never silently returned.
func collectAccounts(rows pgx.Rows) ([]entity.Account, error) {
	defer rows.Close()

	accounts := []entity.Account{}
	for rows.Next() {
		var a entity.Account
		var role entity.Role
		if err := rows.Scan(&a.AccountID, &a.Email, &role.RoleID, &role.RoleName); err != nil {
			return nil, err
		}
		a.Role = &role
		if err := validation.Struct(&a); err != nil {
			return nil, fmt.Errorf("%w: account %d fails schema: %v", apperr.ErrDataIntegrity, a.AccountID, err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create inserts the account and its credential row in one transaction on
// the single acquired connection. The role column takes its store-side
// default (member).
func (r *AccountRepository) Create(ctx context.Context, email, hashedPassword string) (int64, error) {
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
		INSERT INTO accounts (email)
		VALUES ($1)
		RETURNING account_id
	`, email).Scan(&id)
	if err != nil {
		return 0, writeError("insert account", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO credentials (account_id, hashed_password)
		VALUES ($1, $2)
	`, id, hashedPassword)
	if err != nil {
		return 0, writeError("insert credential", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, writeError("commit account create", err)
	}
	return id, nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id, roleID int64) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	res, err := conn.Exec(ctx, `
		UPDATE accounts
		SET role_id = $1
		WHERE account_id = $2
	`, roleID, id)
	if err != nil {
		return writeError("update account role", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetCredential expects exactly one credential row per account; zero or
// multiple means the 1:1 invariant is broken in the store.
func (r *AccountRepository) GetCredential(ctx context.Context, accountID int64) (*entity.Credential, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
		SELECT account_id, hashed_password
		FROM credentials
		WHERE account_id = $1
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creds := []entity.Credential{}
	for rows.Next() {
		var c entity.Credential
		if err := rows.Scan(&c.AccountID, &c.HashedPassword); err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(creds) != 1 {
		return nil, fmt.Errorf("%w: %d credential rows for account %d", apperr.ErrDataIntegrity, len(creds), accountID)
	}
	return &creds[0], nil
}

func (r *AccountRepository) UpdateCredential(ctx context.Context, accountID int64, hashedPassword string) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	res, err := conn.Exec(ctx, `
		UPDATE credentials
		SET hashed_password = $1
		WHERE account_id = $2
	`, hashedPassword, accountID)
	if err != nil {
		return writeError("update credential", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the dependent credential row before the account row,
// both in one transaction on the single acquired connection.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
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

	if _, err := tx.Exec(ctx, `DELETE FROM credentials WHERE account_id = $1`, id); err != nil {
		return writeError("delete credential", err)
	}
	res, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1`, id)
	if err != nil {
		return writeError("delete account", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return writeError("commit account delete", err)
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
