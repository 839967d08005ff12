package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"socialmedia/internal/config"
	"socialmedia/internal/model"
)

func TestPostgresIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		DSN:             dsn,
		MaxOpenConns:    2,
		MaxIdleConns:    2,
		ConnMaxIdleTime: time.Minute,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `TRUNCATE account, message RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	accounts := NewAccounts(db)
	acct, err := accounts.Insert(ctx, model.Account{Username: "pg-user", Password: "abcd"})
	if err != nil {
		t.Fatalf("insert account: %v", err)
	}
	if _, err := accounts.Insert(ctx, model.Account{Username: "pg-user", Password: "abcd"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	messages := NewMessages(db)
	msg, err := messages.Insert(ctx, model.Message{PostedBy: acct.ID, Text: "hi", PostedAt: 1000})
	if err != nil {
		t.Fatalf("insert message: %v", err)
	}
	if _, err := messages.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	if _, err := messages.FindByID(ctx, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
