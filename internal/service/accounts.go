package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"socialmedia/internal/apperr"
	"socialmedia/internal/metrics"
	"socialmedia/internal/model"
	"socialmedia/internal/password"
	"socialmedia/internal/storage"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 4

// AccountService enforces registration and login rules.
type AccountService struct {
	store  storage.AccountStore
	hasher password.Hasher
	log    logrus.FieldLogger
}

// NewAccountService wires an account service. A nil hasher stores passwords
// as given.
func NewAccountService(store storage.AccountStore, hasher password.Hasher, log logrus.FieldLogger) *AccountService {
	if hasher == nil {
		hasher = password.Plain{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AccountService{store: store, hasher: hasher, log: log}
}

// Register persists a new account after checking the username and password.
func (s *AccountService) Register(ctx context.Context, candidate model.Account) (model.Account, error) {
	const op = "register"

	if strings.TrimSpace(candidate.Username) == "" {
		metrics.AccountEvent("register_rejected")
		return model.Account{}, apperr.InvalidInput(op, "username must not be blank")
	}
	if utf8.RuneCountInString(candidate.Password) < MinPasswordLength {
		metrics.AccountEvent("register_rejected")
		return model.Account{}, apperr.InvalidInput(op, "password must be at least 4 characters")
	}

	_, err := s.store.FindByUsername(ctx, candidate.Username)
	switch {
	case err == nil:
		metrics.AccountEvent("register_conflict")
		return model.Account{}, apperr.Conflict(op, "username already exists")
	case !errors.Is(err, storage.ErrNotFound):
		return model.Account{}, apperr.Storage(op, err)
	}

	stored, err := s.hasher.Hash(candidate.Password)
	if err != nil {
		metrics.AccountEvent("register_rejected")
		return model.Account{}, &apperr.Error{Kind: apperr.KindInvalidInput, Op: op, Msg: "password cannot be stored", Err: err}
	}

	acct, err := s.store.Insert(ctx, model.Account{Username: candidate.Username, Password: stored})
	if err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, storage.ErrDuplicate) {
			metrics.AccountEvent("register_conflict")
			return model.Account{}, apperr.Conflict(op, "username already exists")
		}
		return model.Account{}, apperr.Storage(op, err)
	}

	metrics.AccountEvent("registered")
	s.log.WithField("account_id", acct.ID).
		WithField("username", acct.Username).
		Info("account registered")
	return acct, nil
}

// Login returns the stored account when the credentials match.
func (s *AccountService) Login(ctx context.Context, credentials model.Account) (model.Account, error) {
	const op = "login"

	acct, err := s.store.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.AccountEvent("login_failed")
			return model.Account{}, apperr.Unauthorized(op, "invalid credentials")
		}
		return model.Account{}, apperr.Storage(op, err)
	}
	if !s.hasher.Compare(acct.Password, credentials.Password) {
		metrics.AccountEvent("login_failed")
		return model.Account{}, apperr.Unauthorized(op, "invalid credentials")
	}

	metrics.AccountEvent("login")
	return acct, nil
}

// Exists reports whether an account with the id is stored.
func (s *AccountService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, apperr.Storage("account exists", err)
	}
}

// List returns every account ordered by id.
func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage("list accounts", err)
	}
	return accounts, nil
}
