package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", FormatJSON, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("message_id", 7).Info("message created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if entry["msg"] != "message created" || entry["message_id"] != float64(7) {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	if _, err := New("loud", FormatText, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected bad level to fail")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected bad format to fail")
	}
}
