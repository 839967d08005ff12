package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialmedia/internal/model"
)

const accountColumns = `id, username, password`

// Accounts implements AccountStore on top of sqlx.
type Accounts struct {
	db *sqlx.DB
}

var _ AccountStore = (*Accounts)(nil)

// NewAccounts creates an account store using the provided handle.
func NewAccounts(db *sqlx.DB) *Accounts {
	return &Accounts{db: db}
}

func (s *Accounts) Insert(ctx context.Context, acct model.Account) (model.Account, error) {
	var out model.Account
	err := get(ctx, s.db, "insert account", &out,
		`INSERT INTO account (username, password) VALUES (?, ?) RETURNING `+accountColumns,
		acct.Username, acct.Password)
	return out, err
}

func (s *Accounts) FindByID(ctx context.Context, id int64) (model.Account, error) {
	var out model.Account
	err := get(ctx, s.db, "find account by id", &out,
		`SELECT `+accountColumns+` FROM account WHERE id = ?`, id)
	return out, err
}

func (s *Accounts) FindByUsername(ctx context.Context, username string) (model.Account, error) {
	var out model.Account
	err := get(ctx, s.db, "find account by username", &out,
		`SELECT `+accountColumns+` FROM account WHERE username = ?`, username)
	return out, err
}

func (s *Accounts) FindAll(ctx context.Context) ([]model.Account, error) {
	accounts := make([]model.Account, 0)
	if err := s.db.SelectContext(ctx, &accounts, `SELECT `+accountColumns+` FROM account ORDER BY id`); err != nil {
		return nil, wrap("list accounts", err)
	}
	return accounts, nil
}

func (s *Accounts) Update(ctx context.Context, acct model.Account) (model.Account, error) {
	var out model.Account
	err := get(ctx, s.db, "update account", &out,
		`UPDATE account SET username = ?, password = ? WHERE id = ? RETURNING `+accountColumns,
		acct.Username, acct.Password, acct.ID)
	return out, err
}

func (s *Accounts) Delete(ctx context.Context, id int64) (model.Account, error) {
	var out model.Account
	err := get(ctx, s.db, "delete account", &out,
		`DELETE FROM account WHERE id = ? RETURNING `+accountColumns, id)
	return out, err
}
