package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialmedia/internal/config"
	"socialmedia/internal/httpapi"
	"socialmedia/internal/logging"
	"socialmedia/internal/password"
	"socialmedia/internal/service"
	"socialmedia/internal/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("SOCIAL_CONFIG_FILE"), "path to a YAML config file")
	envFile := flag.String("env", ".env", "path to a dotenv file (ignored when missing)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %s\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	hasher, err := password.New(cfg.PasswordHashing)
	if err != nil {
		log.WithError(err).Fatal("password hashing")
	}

	accounts := service.NewAccountService(storage.NewAccounts(db), hasher, log)
	messages := service.NewMessageService(storage.NewMessages(db), accounts, log)

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpapi.NewRouter(httpapi.Options{
			Accounts:       accounts,
			Messages:       messages,
			DB:             db,
			Logger:         log,
			RateLimitRPS:   cfg.HTTP.RateLimitRPS,
			RateLimitBurst: cfg.HTTP.RateLimitBurst,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTP.Addr).
			WithField("driver", cfg.Database.Driver).
			Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
			db.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}
