// Command msgtool inspects and prunes the message store from the shell.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"socialmedia/internal/config"
	"socialmedia/internal/logging"
	"socialmedia/internal/model"
	"socialmedia/internal/password"
	"socialmedia/internal/service"
	"socialmedia/internal/storage"
)

const msgToolDoc = `Social Media Message Tool

Usage:
  msgtool <message_id>...
  msgtool -i
  msgtool -a
  msgtool -h
Options:
  -h            Show this screen.
  -i            Dump all messages to STDOUT as CSV.
  -a            Dump all accounts to STDOUT as CSV.

Settings are read like the server's: SOCIAL_CONFIG_FILE names an optional
YAML file, then .env and SOCIAL_* variables apply.`

type accountLister interface {
	List(ctx context.Context) ([]model.Account, error)
}

type messageStore interface {
	List(ctx context.Context) ([]model.Message, error)
	Delete(ctx context.Context, id int64) (model.Message, bool, error)
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		fmt.Println(msgToolDoc)
		return
	}

	cfg, err := config.Load(os.Getenv("SOCIAL_CONFIG_FILE"), ".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't load config: %s\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't set up logging: %s\n", err)
		os.Exit(1)
	}
	// Only problems reach the terminal; stdout stays machine readable.
	log.SetLevel(logrus.WarnLevel)

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't open database: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

	hasher, err := password.New(cfg.PasswordHashing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't set up password hashing: %s\n", err)
		os.Exit(1)
	}

	accounts := service.NewAccountService(storage.NewAccounts(db), hasher, log)
	messages := service.NewMessageService(storage.NewMessages(db), accounts, log)

	if code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, accounts, messages); code != 0 {
		db.Close()
		os.Exit(code)
	}
}

// run executes one msgtool invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, accounts accountLister, messages messageStore) int {
	switch args[0] {
	case "-h":
		fmt.Fprintln(stdout, msgToolDoc)
		return 0
	case "-i":
		all, err := messages.List(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "SQL error: %s\n", err)
			return 1
		}
		return dumpCSV(stdout, stderr, len(all), func(i int) []string {
			m := all[i]
			return []string{
				strconv.FormatInt(m.ID, 10),
				strconv.FormatInt(m.PostedBy, 10),
				m.Text,
				strconv.FormatInt(m.PostedAt, 10),
			}
		})
	case "-a":
		all, err := accounts.List(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "SQL error: %s\n", err)
			return 1
		}
		return dumpCSV(stdout, stderr, len(all), func(i int) []string {
			return []string{strconv.FormatInt(all[i].ID, 10), all[i].Username}
		})
	}

	code := 0
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid message ID: %s\n", arg)
			code = 2
			continue
		}
		msg, ok, err := messages.Delete(ctx, id)
		switch {
		case err != nil:
			fmt.Fprintf(stderr, "SQL error: %s\n", err)
			code = 1
		case !ok:
			fmt.Fprintf(stdout, "No such entry: %d\n", id)
		default:
			fmt.Fprintf(stdout, "Deleted entry: %d,%d,%q\n", msg.ID, msg.PostedBy, msg.Text)
		}
	}
	return code
}

func dumpCSV(stdout, stderr io.Writer, n int, row func(int) []string) int {
	w := csv.NewWriter(stdout)
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			fmt.Fprintf(stderr, "Write error: %s\n", err)
			return 1
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(stderr, "Write error: %s\n", err)
		return 1
	}
	return 0
}
