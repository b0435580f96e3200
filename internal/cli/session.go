package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/feastverse/internal/api"
	"github.com/roach88/feastverse/internal/catalog"
	"github.com/roach88/feastverse/internal/config"
	"github.com/roach88/feastverse/internal/journal"
	"github.com/roach88/feastverse/internal/store"
)

// session bundles what most commands need: resolved settings and the
// open journal.
type session struct {
	cfg     config.Config
	journal *journal.Journal
}

// loadConfig resolves settings from the env file, the environment and
// the global flags.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// openSession loads settings and opens the journal, creating it if needed.
func openSession(opts *RootOptions) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	j, err := journal.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	return &session{cfg: cfg, journal: j}, nil
}

func (s *session) Close() {
	if err := s.journal.Close(); err != nil {
		slog.Error("error closing journal", "error", err)
	}
}

// catalog loads the configured catalog, or the embedded one.
func (s *session) catalog() (*catalog.Catalog, error) {
	return loadCatalog(s.cfg.CatalogPath)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to load catalog %s", path), err)
	}
	return c, nil
}

// client returns an API client whose token lives in the journal. A stored
// token is restored.
func (s *session) client(ctx context.Context) (*api.Client, error) {
	c := api.New(api.Config{
		BaseURL:           s.cfg.APIURL,
		RequestsPerSecond: s.cfg.RequestsPerSecond,
		Burst:             s.cfg.Burst,
		Tokens:            s.journal,
	})
	if err := c.Restore(ctx); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to restore session", err)
	}
	return c, nil
}

// runningStore is a store restored from the journal with its loop running.
type runningStore struct {
	*store.Store
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop ends the loop and waits for it.
func (r *runningStore) Stop() {
	r.cancel()
	<-r.done
}

// startStore replays the journal into a new store that records further
// dispatches, and starts its loop.
func (s *session) startStore(ctx context.Context, extra ...store.Option) (*runningStore, error) {
	restored, lastSeq, err := s.journal.Replay(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to replay journal", err)
	}
	slog.Debug("journal replayed", "last_seq", lastSeq, "orders", len(restored.Orders()))

	opts := append([]store.Option{
		store.WithInitialState(restored),
		store.WithStartSeq(lastSeq),
		store.WithObserver(journal.NewRecorder(s.journal)),
	}, extra...)
	st := store.New(opts...)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = st.Run(ctx)
	}()
	return &runningStore{Store: st, cancel: cancel, done: done}, nil
}

// signedInClient is client for commands that need an account.
func (s *session) signedInClient(ctx context.Context) (*api.Client, error) {
	c, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	if !c.Authenticated() {
		return nil, NewExitError(ExitFailure, "not signed in; run feastverse login")
	}
	return c, nil
}

// remoteError maps a failed API call to an exit error. An expired session
// is the user's to fix, anything else is a command error.
func remoteError(action string, err error) error {
	switch {
	case api.IsUnauthorized(err):
		return WrapExitError(ExitFailure, "session expired; sign in again", err)
	case api.IsNotFound(err):
		return WrapExitError(ExitFailure, action+": not found", err)
	default:
		return WrapExitError(ExitCommandError, action, err)
	}
}
