package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialmedia/internal/config"
	"socialmedia/internal/logging"
	"socialmedia/internal/model"
	"socialmedia/internal/service"
	"socialmedia/internal/storage"
)

func setupServices(t *testing.T) (*service.AccountService, *service.MessageService) {
	t.Helper()

	db, err := storage.Open(context.Background(), config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		DSN:             filepath.Join(t.TempDir(), "tool.db"),
		MaxOpenConns:    2,
		MaxIdleConns:    2,
		ConnMaxIdleTime: time.Minute,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logging.Discard()
	accounts := service.NewAccountService(storage.NewAccounts(db), nil, log)
	return accounts, service.NewMessageService(storage.NewMessages(db), accounts, log)
}

func seed(t *testing.T, accounts *service.AccountService, messages *service.MessageService) model.Message {
	t.Helper()
	ctx := context.Background()

	acct, err := accounts.Register(ctx, model.Account{Username: "bob", Password: "abcd"})
	require.NoError(t, err)
	msg, err := messages.Create(ctx, model.Message{PostedBy: acct.ID, Text: "hello, world", PostedAt: 1000})
	require.NoError(t, err)
	return msg
}

func TestDumpMessages(t *testing.T) {
	accounts, messages := setupServices(t)
	msg := seed(t, accounts, messages)

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-i"}, &out, &errOut, accounts, messages)

	assert.Equal(t, 0, code)
	assert.Empty(t, errOut.String())
	assert.Equal(t, "1,1,\"hello, world\",1000\n", out.String())
	assert.Equal(t, int64(1), msg.ID)
}

func TestDumpAccounts(t *testing.T) {
	accounts, messages := setupServices(t)
	seed(t, accounts, messages)

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-a"}, &out, &errOut, accounts, messages)

	assert.Equal(t, 0, code)
	assert.Equal(t, "1,bob\n", out.String())
}

func TestDeleteMessages(t *testing.T) {
	accounts, messages := setupServices(t)
	msg := seed(t, accounts, messages)

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"1", "7", "nope"}, &out, &errOut, accounts, messages)

	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "Deleted entry: 1,1,\"hello, world\"")
	assert.Contains(t, out.String(), "No such entry: 7")
	assert.Contains(t, errOut.String(), "Invalid message ID: nope")

	_, ok, err := messages.Get(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), []string{"-h"}, &out, &out, nil, nil)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage:")
}
