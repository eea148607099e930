package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aimarketplace/go-client-auth/credentials"
	"github.com/aimarketplace/go-client-auth/internal/config"
	"github.com/aimarketplace/go-client-auth/session"
	"github.com/aimarketplace/go-client-auth/store"
	"github.com/aimarketplace/go-client-auth/token"
)

const usage = `usage: authctl <command>

commands:
  login <email> <password>   authenticate and persist the session
  status                     print the current session status
  logout                     clear the persisted session
`

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("authctl failed")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		fmt.Print(usage)
		return errors.New("missing command")
	}

	c := config.New()
	displayAppname(c.GetAppName())

	kv, err := store.NewSQLite(filepath.Join(c.GetDataFolder(), "session.db"))
	if err != nil {
		return fmt.Errorf("store.NewSQLite: %w", err)
	}
	defer kv.Close()

	verifier, err := credentials.NewStaticVerifier(credentials.DemoEntries())
	if err != nil {
		return fmt.Errorf("credentials.NewStaticVerifier: %w", err)
	}

	issuer, err := token.NewIssuer()
	if err != nil {
		return fmt.Errorf("token.NewIssuer: %w", err)
	}

	manager, err := session.NewManager(kv, verifier, issuer)
	if err != nil {
		return fmt.Errorf("session.NewManager: %w", err)
	}

	ctx := context.Background()
	manager.Initialize(ctx)

	switch os.Args[1] {
	case "login":
		return loginCmd(ctx, manager, os.Args[2:])
	case "status":
		return statusCmd(manager)
	case "logout":
		manager.Logout(ctx)
		fmt.Println("logged out")
		return nil
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", os.Args[1])
	}
}

func loginCmd(ctx context.Context, manager *session.Manager, args []string) error {
	if len(args) != 2 {
		fmt.Print(usage)
		return errors.New("login requires <email> <password>")
	}
	if !manager.Login(ctx, args[0], args[1]) {
		return errors.New("unable to sign in")
	}
	status := manager.Status()
	fmt.Printf("signed in as %s (%s)\n", status.User.Email, status.User.Role)
	return nil
}

func statusCmd(manager *session.Manager) error {
	status := manager.Status()
	out := map[string]any{
		"isAuthenticated": status.IsAuthenticated,
		"loading":         status.Loading,
	}
	if status.User != nil {
		out["user"] = status.User
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
