// Package storage is the relational gateway for accounts and messages.
//
// Every method runs a single parameterized statement on the pooled handle and
// either returns complete records or one of the sentinel errors below. Any
// other error is a storage fault.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"socialmedia/internal/model"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

const pqUniqueViolation = "23505"

// AccountStore persists account records.
type AccountStore interface {
	Insert(ctx context.Context, acct model.Account) (model.Account, error)
	FindByID(ctx context.Context, id int64) (model.Account, error)
	FindByUsername(ctx context.Context, username string) (model.Account, error)
	FindAll(ctx context.Context) ([]model.Account, error)
	Update(ctx context.Context, acct model.Account) (model.Account, error)
	Delete(ctx context.Context, id int64) (model.Account, error)
}

// MessageStore persists message records.
type MessageStore interface {
	Insert(ctx context.Context, msg model.Message) (model.Message, error)
	FindByID(ctx context.Context, id int64) (model.Message, error)
	FindAll(ctx context.Context) ([]model.Message, error)
	FindByPoster(ctx context.Context, accountID int64) ([]model.Message, error)
	UpdateText(ctx context.Context, id int64, text string) (model.Message, error)
	Delete(ctx context.Context, id int64) (model.Message, error)
}

// wrap attaches the operation name and maps driver errors onto the sentinels.
func wrap(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicate, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == pqUniqueViolation
	}
	return false
}

// get runs a single-row statement and scans it into dest.
func get(ctx context.Context, db *sqlx.DB, op string, dest any, query string, args ...any) error {
	if err := db.GetContext(ctx, dest, db.Rebind(query), args...); err != nil {
		return wrap(op, err)
	}
	return nil
}
