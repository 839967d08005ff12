// Package httpapi exposes the account and message services over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"socialmedia/internal/metrics"
	"socialmedia/internal/model"
)

// Accounts is the account service as the handlers use it.
type Accounts interface {
	Register(ctx context.Context, candidate model.Account) (model.Account, error)
	Login(ctx context.Context, credentials model.Account) (model.Account, error)
}

// Messages is the message service as the handlers use it.
type Messages interface {
	Create(ctx context.Context, msg model.Message) (model.Message, error)
	Get(ctx context.Context, id int64) (model.Message, bool, error)
	List(ctx context.Context) ([]model.Message, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Message, error)
	Delete(ctx context.Context, id int64) (model.Message, bool, error)
	UpdateText(ctx context.Context, id int64, text string) (model.Message, bool, error)
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures NewRouter. DB may be nil, in which case /health always
// reports ok. A RateLimitRPS of zero disables rate limiting.
type Options struct {
	Accounts Accounts
	Messages Messages
	DB       Pinger
	Logger   logrus.FieldLogger

	RateLimitRPS   float64
	RateLimitBurst int
}

// Server holds the handler dependencies.
type Server struct {
	accounts Accounts
	messages Messages
	db       Pinger
	log      logrus.FieldLogger
}

// NewRouter builds the routing table and middleware chain.
func NewRouter(opts Options) *mux.Router {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		accounts: opts.Accounts,
		messages: opts.Messages,
		db:       opts.DB,
		log:      log,
	}

	r := mux.NewRouter()
	r.Use(Recovery(log), RequestID, AccessLog(log), Metrics)
	if opts.RateLimitRPS > 0 {
		r.Use(NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Handler)
	}

	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/messages", s.createMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages", s.listMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", s.getMessage).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", s.deleteMessage).Methods(http.MethodDelete)
	r.HandleFunc("/messages/{message_id}", s.updateMessage).Methods(http.MethodPatch)
	r.HandleFunc("/accounts/{account_id}/messages", s.listAccountMessages).Methods(http.MethodGet)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}
