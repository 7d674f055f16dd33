package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/branchadmin/internal/client/client"
	"github.com/dmitrijs2005/branchadmin/internal/client/config"
	"github.com/dmitrijs2005/branchadmin/internal/client/cooldown"
	"github.com/dmitrijs2005/branchadmin/internal/client/guard"
	"github.com/dmitrijs2005/branchadmin/internal/client/services"
	"github.com/dmitrijs2005/branchadmin/internal/client/session"
	"github.com/dmitrijs2005/branchadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/dmitrijs2005/branchadmin/internal/logging"
)

// App is the interactive client. It owns the process-wide session and the
// services built on it.
type App struct {
	config      *config.Config
	log         logging.Logger
	logOut      io.Closer
	db          *sql.DB
	session     *session.State
	authService services.AuthService
	guard       *guard.Authorizer
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	view guard.Route
}

// NewApp opens the session database and wires the API client, session and
// services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logOut := logging.Output(c.LogFile)
	logger := logging.New(logOut, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.SessionDBPath, "error", err)
		_ = logOut.Close()
		return nil, err
	}

	store := tokenstore.NewSQLiteStore(db)
	sess := session.New(store, cooldown.New(), logger)
	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, store, nil, logger)

	return &App{
		config:      c,
		log:         logger,
		logOut:      logOut,
		db:          db,
		session:     sess,
		authService: services.NewAuthService(api, sess, logger),
		guard:       guard.NewAuthorizer(sess, logger),
		reader:      bufio.NewReader(os.Stdin),
		out:         newSyncWriter(os.Stdout),
		view:        guard.RouteLogin,
	}, nil
}

// Run validates any stored session in the background and then serves the
// REPL until the user exits or ctx is done. The session cooldown and the
// database are released on return.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.restore(ctx)
	}()

	defer func() {
		cancel()
		wg.Wait()
		a.session.Close()
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "error closing database", "error", err)
		}
		_ = a.logOut.Close()
	}()

	fmt.Fprintln(a.out, "Branch admin CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// restore validates a token left by a previous run. A rejected token is
// dropped silently.
func (a *App) restore(ctx context.Context) {
	err := a.authService.Restore(ctx)
	switch {
	case err == nil:
		if u := a.session.CurrentUser(); u != nil {
			a.setView(guard.RouteBranches)
			fmt.Fprintf(a.out, "\nWelcome back, %s\n", u.Name)
		}
	case errors.Is(err, common.ErrStaleSession), errors.Is(err, context.Canceled):
	case errors.Is(err, common.ErrRoleRejected):
		fmt.Fprintln(a.out, "\n"+guard.AccessDeniedNotice)
	default:
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
}

func (a *App) phase() session.Phase {
	return a.session.Phase()
}

func (a *App) currentView() guard.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) setView(r guard.Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = r
}

// status renders the prompt context: who is signed in and where, or which
// challenge is pending and when a resend is allowed.
func (a *App) status() string {
	snap := a.session.Snapshot()
	switch snap.Phase {
	case session.Authenticated:
		return fmt.Sprintf("(%s %s @%s)", snap.User.Initials(), snap.User.Name, a.currentView())
	case session.TwoFactorPending:
		if snap.ResendIn > 0 {
			return fmt.Sprintf("(verify %s, resend in %ds)", snap.PendingEmail, snap.ResendIn)
		}
		return fmt.Sprintf("(verify %s, resend ready)", snap.PendingEmail)
	default:
		return "(signed out)"
	}
}

// syncWriter serializes writes from the REPL and the startup restore.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
