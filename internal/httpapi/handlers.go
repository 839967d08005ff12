package httpapi

import (
	"context"
	"net/http"
	"time"

	"socialmedia/internal/apperr"
	"socialmedia/internal/model"
)

// POST /register
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var candidate model.Account
	if err := decodeJSON(r, &candidate); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	acct, err := s.accounts.Register(r.Context(), candidate)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

// POST /login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var credentials model.Account
	if err := decodeJSON(r, &credentials); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	acct, err := s.accounts.Login(r.Context(), credentials)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

// POST /messages
func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) {
	var msg model.Message
	if err := decodeJSON(r, &msg); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	created, err := s.messages.Create(r.Context(), msg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// GET /messages
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.messages.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// GET /messages/{message_id}
func (s *Server) getMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "message_id")
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	msg, ok, err := s.messages.Get(r.Context(), id)
	s.writeLookup(w, r, msg, ok, err)
}

// DELETE /messages/{message_id}
func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "message_id")
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	msg, ok, err := s.messages.Delete(r.Context(), id)
	s.writeLookup(w, r, msg, ok, err)
}

// PATCH /messages/{message_id}
func (s *Server) updateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "message_id")
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	msg, ok, err := s.messages.UpdateText(r.Context(), id, payload.Text)
	s.writeLookup(w, r, msg, ok, err)
}

// GET /accounts/{account_id}/messages
func (s *Server) listAccountMessages(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "account_id")
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	messages, err := s.messages.ListByAccount(r.Context(), accountID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		s.log.WithError(err).WithField("request_id", RequestIDFromContext(r.Context())).Warn("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeLookup renders a comma-ok result: the record, or 200 with an empty
// body when nothing matched.
func (s *Server) writeLookup(w http.ResponseWriter, r *http.Request, msg model.Message, ok bool, err error) {
	switch {
	case err != nil:
		s.fail(w, r, err)
	case !ok:
		writeEmpty(w, http.StatusOK)
	default:
		writeJSON(w, http.StatusOK, msg)
	}
}

// fail maps a service error to its status. Business failures carry no body;
// anything else is logged and reported as a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput, apperr.KindConflict:
		writeEmpty(w, http.StatusBadRequest)
	case apperr.KindUnauthorized:
		writeEmpty(w, http.StatusUnauthorized)
	default:
		s.log.WithError(err).
			WithField("request_id", RequestIDFromContext(r.Context())).
			WithField("path", r.URL.Path).
			Error("request failed")
		writeError(w, http.StatusInternalServerError, apperr.Message(err))
	}
}
