package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS account (
  id       INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL
);
`,
	`
CREATE TABLE IF NOT EXISTS message (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  posted_by INTEGER NOT NULL,
  text      TEXT NOT NULL,
  posted_at INTEGER NOT NULL
);
`,
	`
CREATE INDEX IF NOT EXISTS idx_message_posted_by
ON message (posted_by, id);
`,
}

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS account (
  id       BIGSERIAL PRIMARY KEY,
  username VARCHAR(255) NOT NULL UNIQUE,
  password VARCHAR(255) NOT NULL
);
`,
	`
CREATE TABLE IF NOT EXISTS message (
  id        BIGSERIAL PRIMARY KEY,
  posted_by BIGINT NOT NULL,
  text      VARCHAR(255) NOT NULL,
  posted_at BIGINT NOT NULL
);
`,
	`
CREATE INDEX IF NOT EXISTS idx_message_posted_by
ON message (posted_by, id);
`,
}

// EnsureSchema creates the account and message tables when missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == "postgres" {
		statements = postgresSchema
	}
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
