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
	"socialmedia/internal/storage"
)

// MaxMessageLength is the exclusive upper bound on message text length,
// counted in characters.
const MaxMessageLength = 255

// AccountChecker answers whether an account id is registered.
type AccountChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// MessageService enforces message content rules.
type MessageService struct {
	store    storage.MessageStore
	accounts AccountChecker
	log      logrus.FieldLogger
}

func NewMessageService(store storage.MessageStore, accounts AccountChecker, log logrus.FieldLogger) *MessageService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MessageService{store: store, accounts: accounts, log: log}
}

func validateText(op, text string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.InvalidInput(op, "text must not be blank")
	}
	if utf8.RuneCountInString(text) >= MaxMessageLength {
		return apperr.InvalidInput(op, "text must be shorter than 255 characters")
	}
	return nil
}

// Create stores a message posted by an existing account.
func (s *MessageService) Create(ctx context.Context, msg model.Message) (model.Message, error) {
	const op = "create message"

	if err := validateText(op, msg.Text); err != nil {
		metrics.MessageEvent("create_rejected")
		return model.Message{}, err
	}

	ok, err := s.accounts.Exists(ctx, msg.PostedBy)
	if err != nil {
		return model.Message{}, err
	}
	if !ok {
		metrics.MessageEvent("create_rejected")
		return model.Message{}, apperr.InvalidInput(op, "posted_by does not reference an existing account")
	}

	created, err := s.store.Insert(ctx, model.Message{PostedBy: msg.PostedBy, Text: msg.Text, PostedAt: msg.PostedAt})
	if err != nil {
		return model.Message{}, apperr.Storage(op, err)
	}

	metrics.MessageEvent("created")
	s.log.WithField("message_id", created.ID).
		WithField("account_id", created.PostedBy).
		Info("message created")
	return created, nil
}

// Get returns the message with the id. ok is false when there is none.
func (s *MessageService) Get(ctx context.Context, id int64) (model.Message, bool, error) {
	msg, err := s.store.FindByID(ctx, id)
	return found("get message", msg, err)
}

// List returns all messages in storage order. The result is never nil.
func (s *MessageService) List(ctx context.Context) ([]model.Message, error) {
	messages, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage("list messages", err)
	}
	return messages, nil
}

// ListByAccount returns the messages posted by an account. Unknown accounts
// yield an empty result.
func (s *MessageService) ListByAccount(ctx context.Context, accountID int64) ([]model.Message, error) {
	messages, err := s.store.FindByPoster(ctx, accountID)
	if err != nil {
		return nil, apperr.Storage("list messages by account", err)
	}
	return messages, nil
}

// Delete removes a message and returns it. Deleting a missing id reports
// ok == false and changes nothing.
func (s *MessageService) Delete(ctx context.Context, id int64) (model.Message, bool, error) {
	removed, err := s.store.Delete(ctx, id)
	msg, ok, err := found("delete message", removed, err)
	if ok {
		metrics.MessageEvent("deleted")
		s.log.WithField("message_id", msg.ID).
			WithField("account_id", msg.PostedBy).
			Info("message deleted")
	}
	return msg, ok, err
}

// UpdateText replaces the text of a message, keeping its id, poster and
// timestamp.
func (s *MessageService) UpdateText(ctx context.Context, id int64, text string) (model.Message, bool, error) {
	const op = "update message"

	if err := validateText(op, text); err != nil {
		metrics.MessageEvent("update_rejected")
		return model.Message{}, false, err
	}

	updated, err := s.store.UpdateText(ctx, id, text)
	msg, ok, err := found(op, updated, err)
	if ok {
		metrics.MessageEvent("updated")
		s.log.WithField("message_id", msg.ID).
			WithField("account_id", msg.PostedBy).
			Info("message updated")
	}
	return msg, ok, err
}

// found folds a store miss into the comma-ok form.
func found(op string, msg model.Message, err error) (model.Message, bool, error) {
	switch {
	case err == nil:
		return msg, true, nil
	case errors.Is(err, storage.ErrNotFound):
		return model.Message{}, false, nil
	default:
		return model.Message{}, false, apperr.Storage(op, err)
	}
}
