package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/common/db"
	"github.com/AlibekovAA/account-core/internal/common/logger"
)

const (
	pgStore = "postgres"

	pgUniqueViolation   = "23505"
	pgUsernameIndexName = "accounts_username_ci_key"
	pgEmailIndexName    = "accounts_email_ci_key"

	pgSelectAccount = `SELECT id, username, email, digest, is_admin, created_at, updated_at FROM accounts`
)

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL,
		email      TEXT NOT NULL,
		digest     TEXT NOT NULL,
		is_admin   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + pgUsernameIndexName + ` ON accounts (lower(username))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + pgEmailIndexName + ` ON accounts (lower(email))`,
}

type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, log: log}
}

// EnsureSchema creates the accounts table and the case-insensitive unique
// indexes that back the uniqueness invariants.
func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range pgSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure accounts schema: %w", err)
		}
	}
	return nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return r.findOne(ctx, "find account by id", pgSelectAccount+` WHERE id = $1`, string(id))
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, "find account by username", pgSelectAccount+` WHERE username = $1`, username)
}

func (r *PgRepository) FindByUsernameCI(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, "find account by username ci", pgSelectAccount+` WHERE lower(username) = lower($1)`, username)
}

func (r *PgRepository) FindByEmailCI(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, "find account by email ci", pgSelectAccount+` WHERE lower(email) = lower($1)`, email)
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg string) (domain.Account, error) {
	start := time.Now()

	var acc domain.Account
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func(ctx context.Context) error {
		var id string
		row := r.pool.QueryRow(ctx, query, arg)
		if err := row.Scan(&id, &acc.Username, &acc.Email, &acc.Digest, &acc.IsAdmin, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return err
		}
		acc.ID = domain.ID(id)
		return nil
	})

	err = db.HandleQueryError(err, ErrAccountNotFound, operation)
	db.ObserveQuery(pgStore, operation, start, err, ErrAccountNotFound)
	if err != nil {
		return domain.Account{}, err
	}
	return acc, nil
}

func (r *PgRepository) Insert(ctx context.Context, account domain.Account) error {
	start := time.Now()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO accounts (id, username, email, digest, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(account.ID),
		account.Username,
		account.Email,
		account.Digest,
		account.IsAdmin,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		err = mapPgInsertError(err)
	}

	db.ObserveQuery(pgStore, "insert account", start, err)
	return err
}

func mapPgInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case pgUsernameIndexName:
			return &DuplicateConstraintViolation{Field: domain.FieldUsername}
		case pgEmailIndexName:
			return &DuplicateConstraintViolation{Field: domain.FieldEmail}
		}
	}
	return fmt.Errorf("failed to insert account: %w", err)
}

func (r *PgRepository) Update(ctx context.Context, account domain.Account) error {
	start := time.Now()

	tag, err := r.pool.Exec(
		ctx,
		`UPDATE accounts SET is_admin = $2, updated_at = $3 WHERE id = $1`,
		string(account.ID),
		account.IsAdmin,
		account.UpdatedAt,
	)
	switch {
	case err != nil:
		err = fmt.Errorf("failed to update account: %w", err)
	case tag.RowsAffected() == 0:
		err = ErrAccountNotFound
	}

	db.ObserveQuery(pgStore, "update account", start, err, ErrAccountNotFound)
	return err
}
