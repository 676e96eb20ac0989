// Package cli implements the gpresence terminal dashboard.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/config"
	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	serviceAuth "github.com/didacticiel/Gpresence/internal/service/auth"
	serviceEmployee "github.com/didacticiel/Gpresence/internal/service/employee"
	servicePresence "github.com/didacticiel/Gpresence/internal/service/presence"
	serviceReport "github.com/didacticiel/Gpresence/internal/service/report"
	"github.com/didacticiel/Gpresence/internal/session"
)

type Options struct {
	Config  *config.Config
	Version string

	// Store defaults to a FileStore at Config.Session.Path.
	Store session.Store
	// RoundTripper defaults to http.DefaultTransport.
	RoundTripper http.RoundTripper

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Now defaults to time.Now.
	Now func() time.Time
}

// App is built once per invocation, before the command runs.
type App struct {
	opts   Options
	format string

	Session   *session.Session
	Client    *client.Client
	Auth      *serviceAuth.SessionService
	Employees *serviceEmployee.RosterService
	Reports   *serviceReport.ReportBookService
}

var errNotLoggedIn = errors.New("vous n'êtes pas connecté : lancez `gpresence login`")

func (a *App) init() error {
	if a.Session != nil {
		return nil
	}
	if a.opts.Config == nil {
		return errors.New("missing configuration")
	}

	store := a.opts.Store
	if store == nil {
		store = session.NewFileStore(a.opts.Config.Session.Path)
	}
	a.Session = session.New(store)
	if err := a.Session.Load(); err != nil && !errors.Is(err, auth.ErrNoSession) {
		return fmt.Errorf("failed to load session: %w", err)
	}

	var clientOpts []client.Option
	if a.opts.RoundTripper != nil {
		clientOpts = append(clientOpts, client.WithRoundTripper(a.opts.RoundTripper))
	}
	a.Client = client.New(a.opts.Config.API.BaseURL, a.opts.Config.API.Timeout, a.Session, clientOpts...)

	a.Auth = serviceAuth.NewSessionService(a.Client.Users, a.Session)
	a.Employees = serviceEmployee.NewRosterService(a.Client.Employees, a.opts.Now)
	a.Reports = serviceReport.NewReportBookService(a.Client.Reports)
	return nil
}

// require is the guard in front of every dashboard command.
func (a *App) require() (user.Identity, error) {
	identity, err := a.Session.Require()
	if err != nil {
		return user.Identity{}, errNotLoggedIn
	}
	return identity, nil
}

// board builds the presence workflow for the current session.
func (a *App) board() *servicePresence.Board {
	notifier := servicePresence.MultiNotifier{
		servicePresence.NewWriterNotifier(a.opts.Stdout),
		servicePresence.NewLogNotifier(nil),
	}
	return servicePresence.NewBoard(a.Client.Presences, a.Session, notifier, servicePresence.Clock(a.opts.Now))
}

// outcomeError ends a command whose outcome was already shown to the user.
type outcomeError struct {
	outcome servicePresence.Outcome
}

func (e *outcomeError) Error() string {
	return e.outcome.Message
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(opts.Stdin)
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var oe *outcomeError
		if !errors.As(err, &oe) {
			fmt.Fprintln(opts.Stderr, "Erreur :", err)
		}
		return 1
	}
	return 0
}
