package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/AlibekovAA/account-core/internal/account/domain"
	"github.com/AlibekovAA/account-core/internal/common/db"
)

const (
	sqliteStore = "sqlite"

	sqliteSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL UNIQUE COLLATE NOCASE,
	email      TEXT NOT NULL UNIQUE COLLATE NOCASE,
	digest     TEXT NOT NULL,
	is_admin   INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);`

	sqliteSelectAccount = `SELECT id, username, email, digest, is_admin, created_at, updated_at FROM accounts`
)

// SQLiteRepository keeps accounts in a single SQLite file. The NOCASE
// collation on username and email makes the UNIQUE constraints
// case-insensitive; exact lookups override it with COLLATE BINARY.
type SQLiteRepository struct {
	sqlDB *sql.DB
}

func OpenSQLiteRepository(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create accounts schema: %w", err)
	}

	return &SQLiteRepository{sqlDB: sqlDB}, nil
}

func (r *SQLiteRepository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

func toMicros(value time.Time) int64 {
	return value.UTC().UnixMicro()
}

func fromMicros(value int64) time.Time {
	return time.UnixMicro(value).UTC()
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return r.findOne(ctx, "find account by id", sqliteSelectAccount+` WHERE id = ?`, string(id))
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, "find account by username", sqliteSelectAccount+` WHERE username = ? COLLATE BINARY`, username)
}

func (r *SQLiteRepository) FindByUsernameCI(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, "find account by username ci", sqliteSelectAccount+` WHERE username = ?`, username)
}

func (r *SQLiteRepository) FindByEmailCI(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, "find account by email ci", sqliteSelectAccount+` WHERE email = ?`, email)
}

func (r *SQLiteRepository) findOne(ctx context.Context, operation, query, arg string) (domain.Account, error) {
	start := time.Now()

	var (
		acc                  domain.Account
		id                   string
		isAdmin              int
		createdAt, updatedAt int64
	)
	err := r.sqlDB.QueryRowContext(ctx, query, arg).
		Scan(&id, &acc.Username, &acc.Email, &acc.Digest, &isAdmin, &createdAt, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = ErrAccountNotFound
	case err != nil:
		err = fmt.Errorf("failed to %s: %w", operation, err)
	}

	db.ObserveQuery(sqliteStore, operation, start, err, ErrAccountNotFound)
	if err != nil {
		return domain.Account{}, err
	}

	acc.ID = domain.ID(id)
	acc.IsAdmin = isAdmin != 0
	acc.CreatedAt = fromMicros(createdAt)
	acc.UpdatedAt = fromMicros(updatedAt)
	return acc, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, account domain.Account) error {
	start := time.Now()

	_, err := r.sqlDB.ExecContext(
		ctx,
		`INSERT INTO accounts (id, username, email, digest, is_admin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(account.ID),
		account.Username,
		account.Email,
		account.Digest,
		boolToInt(account.IsAdmin),
		toMicros(account.CreatedAt),
		toMicros(account.UpdatedAt),
	)
	if err != nil {
		err = mapSQLiteInsertError(err)
	}

	db.ObserveQuery(sqliteStore, "insert account", start, err)
	return err
}

func mapSQLiteInsertError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "accounts.username"):
			return &DuplicateConstraintViolation{Field: domain.FieldUsername}
		case strings.Contains(msg, "accounts.email"):
			return &DuplicateConstraintViolation{Field: domain.FieldEmail}
		}
	}
	return fmt.Errorf("failed to insert account: %w", err)
}

func (r *SQLiteRepository) Update(ctx context.Context, account domain.Account) error {
	start := time.Now()

	res, err := r.sqlDB.ExecContext(
		ctx,
		`UPDATE accounts SET is_admin = ?, updated_at = ? WHERE id = ?`,
		boolToInt(account.IsAdmin),
		toMicros(account.UpdatedAt),
		string(account.ID),
	)
	if err == nil {
		var n int64
		n, err = res.RowsAffected()
		if err == nil && n == 0 {
			err = ErrAccountNotFound
		}
	}
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		err = fmt.Errorf("failed to update account: %w", err)
	}

	db.ObserveQuery(sqliteStore, "update account", start, err, ErrAccountNotFound)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
