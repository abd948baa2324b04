// Package cli is the interactive terminal frontend of promoctl: a small
// REPL whose protected commands are gated on the session state exactly the
// way protected views are gated in the web dashboard.
package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/promogpt/promoctl/internal/client/api"
	"github.com/promogpt/promoctl/internal/client/config"
	"github.com/promogpt/promoctl/internal/client/credentials"
	"github.com/promogpt/promoctl/internal/client/guard"
	"github.com/promogpt/promoctl/internal/client/session"
	"github.com/promogpt/promoctl/internal/client/transport"
	"github.com/promogpt/promoctl/internal/logging"
)

type App struct {
	config  *config.Config
	session *session.Manager
	api     api.Client
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// business is the slug all product/sales/campaign commands operate on.
	business string

	closeDB func() error
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var store credentials.Store
	closeDB := func() error { return nil }

	db, err := credentials.Open(ctx, cfg.CredentialsDB)
	if err != nil {
		// Local storage being broken must not keep the user from working;
		// the session just won't survive restarts.
		log.Warn(ctx, "credentials storage unavailable, continuing without persistence", "error", err)
		store = credentials.NoopStore{}
	} else {
		store = credentials.NewSQLiteStore(db)
		closeDB = db.Close
	}

	authorizer := transport.NewAuthorizer(nil, log)
	hc := &http.Client{Transport: authorizer, Timeout: cfg.RequestTimeout}
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, hc, log)

	verifier := session.NewVerifier(apiClient, log)
	manager := session.NewManager(store, verifier, apiClient, authorizer, log)
	authorizer.OnUnauthorized(manager.HandleUnauthorized)

	return &App{
		config:  cfg,
		session: manager,
		api:     apiClient,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closeDB: closeDB,
	}, nil
}

// Run restores the session in the background and hands control to the REPL.
// Protected commands wait for the restore to settle via the guard, so the
// prompt is usable immediately.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.closeDB() }()

	go func() {
		if err := a.session.Bootstrap(ctx); err != nil {
			a.log.Debug(ctx, "session bootstrap interrupted", "error", err)
		}
	}()

	runREPL(ctx, a, a.status, a.out, bufio.NewScanner(os.Stdin))
}

func (a *App) loggedIn() bool {
	return a.session.Current().LoggedIn()
}

// status renders the prompt segment describing the session.
func (a *App) status() string {
	cur := a.session.Current()
	switch cur.Status {
	case session.StatusVerifying:
		return "verifying..."
	case session.StatusAuthenticated:
		if a.business != "" {
			return cur.User.Email + "@" + a.business
		}
		return cur.User.Email
	default:
		return "anonymous"
	}
}

// requireAuth resolves the guard decision for a protected command. While a
// boot-time verification is running it waits instead of bouncing the user
// to login prematurely.
func (a *App) requireAuth(ctx context.Context) bool {
	if a.session.Current().Status == session.StatusVerifying {
		printlnFn("Restoring session...")
	}

	decision, err := guard.Resolve(ctx, a.session, guard.RequiresAuth)
	if err != nil {
		return false
	}
	if decision != guard.Allow {
		printlnFn("Please login first.")
		return false
	}
	return true
}

// requireBusiness makes sure a business slug is selected, prompting for one
// if necessary.
func (a *App) requireBusiness() bool {
	if a.business != "" {
		return true
	}
	slug, err := getSimpleText(a.reader, "Enter business slug", a.out)
	if err != nil || slug == "" {
		printlnFn("No business selected. Run 'businesses' to list yours.")
		return false
	}
	a.business = slug
	return true
}
