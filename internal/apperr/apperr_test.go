package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestKindOfSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Conflict("register", "username already exists"))
	if got := KindOf(err); got != KindConflict {
		t.Fatalf("expected conflict, got %s", got)
	}
	if !Is(err, KindConflict) {
		t.Fatalf("expected Is to match conflict")
	}
	if Is(nil, KindConflict) {
		t.Fatalf("nil must not match any kind")
	}
}

func TestStorageUnwrapsCause(t *testing.T) {
	err := Storage("find message", sql.ErrConnDone)
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected cause to be reachable")
	}
	if KindOf(err) != KindStorage {
		t.Fatalf("expected storage kind")
	}
	if Message(err) != "internal error" {
		t.Fatalf("storage details must not leak, got %q", Message(err))
	}
}

func TestMessage(t *testing.T) {
	if got := Message(InvalidInput("create message", "text must not be blank")); got != "text must not be blank" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Message(errors.New("boom")); got != "internal error" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestErrorString(t *testing.T) {
	err := Unauthorized("login", "invalid credentials")
	if err.Error() != "login: invalid credentials" {
		t.Errorf("unexpected error string %q", err.Error())
	}

	err = Storage("insert account", sql.ErrNoRows)
	if err.Error() != "insert account: sql: no rows in result set" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}
