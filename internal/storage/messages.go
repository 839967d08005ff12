package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialmedia/internal/model"
)

const messageColumns = `id, posted_by, text, posted_at`

// Messages implements MessageStore on top of sqlx.
type Messages struct {
	db *sqlx.DB
}

var _ MessageStore = (*Messages)(nil)

// NewMessages creates a message store using the provided handle.
func NewMessages(db *sqlx.DB) *Messages {
	return &Messages{db: db}
}

func (s *Messages) Insert(ctx context.Context, msg model.Message) (model.Message, error) {
	var out model.Message
	err := get(ctx, s.db, "insert message", &out,
		`INSERT INTO message (posted_by, text, posted_at) VALUES (?, ?, ?) RETURNING `+messageColumns,
		msg.PostedBy, msg.Text, msg.PostedAt)
	return out, err
}

func (s *Messages) FindByID(ctx context.Context, id int64) (model.Message, error) {
	var out model.Message
	err := get(ctx, s.db, "find message", &out,
		`SELECT `+messageColumns+` FROM message WHERE id = ?`, id)
	return out, err
}

func (s *Messages) FindAll(ctx context.Context) ([]model.Message, error) {
	return s.list(ctx, "list messages", `SELECT `+messageColumns+` FROM message ORDER BY id`)
}

func (s *Messages) FindByPoster(ctx context.Context, accountID int64) ([]model.Message, error) {
	return s.list(ctx, "list messages by account",
		`SELECT `+messageColumns+` FROM message WHERE posted_by = ? ORDER BY id`, accountID)
}

// UpdateText replaces the text of one message. id, posted_by and posted_at
// are left as stored.
func (s *Messages) UpdateText(ctx context.Context, id int64, text string) (model.Message, error) {
	var out model.Message
	err := get(ctx, s.db, "update message", &out,
		`UPDATE message SET text = ? WHERE id = ? RETURNING `+messageColumns, text, id)
	return out, err
}

// Delete removes a message and returns the row as it was.
func (s *Messages) Delete(ctx context.Context, id int64) (model.Message, error) {
	var out model.Message
	err := get(ctx, s.db, "delete message", &out,
		`DELETE FROM message WHERE id = ? RETURNING `+messageColumns, id)
	return out, err
}

func (s *Messages) list(ctx context.Context, op, query string, args ...any) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	if err := s.db.SelectContext(ctx, &messages, s.db.Rebind(query), args...); err != nil {
		return nil, wrap(op, err)
	}
	return messages, nil
}
