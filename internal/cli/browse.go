package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/api"
	"github.com/roach88/feastverse/internal/checkout"
	"github.com/roach88/feastverse/internal/lifecycle"
	"github.com/roach88/feastverse/internal/store"
	"github.com/roach88/feastverse/internal/tui"
)

// BrowseOptions holds flags for the browse command.
type BrowseOptions struct {
	*RootOptions
	Offline bool
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BrowseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive client",
		Long: `Open the terminal client: browse the reel feed and restaurants, fill the
cart, check out and watch orders progress.

State is restored from the journal and every dispatch is recorded back to
it. Active orders advance on their own while the client is open. When
signed in, follows, subscriptions, likes and placed orders are also sent
to the remote service unless --offline is given.

Examples:
  feastverse browse
  feastverse browse --db /tmp/feastverse.db --offline`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "do not contact the remote service")

	return cmd
}

func runBrowse(opts *BrowseOptions, cmd *cobra.Command) error {
	// Stderr belongs to the alt screen while the client runs. Records go to
	// the log file and warnings also show in the status bar.
	tuiHandler := tui.NewLogHandler(slog.LevelWarn)
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	handler, closeLog, err := openLogHandler(cfg.LogFile, opts.Verbose, tuiHandler)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot open log file %s", cfg.LogFile), err)
	}
	defer closeLog()
	previous := slog.Default()
	slog.SetDefault(slog.New(handler))
	defer slog.SetDefault(previous)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	cat, err := sess.catalog()
	if err != nil {
		return err
	}

	var (
		workers sync.WaitGroup
		extra   []store.Option
		reviews tui.ReviewSource
	)
	if !opts.Offline {
		client, err := sess.client(ctx)
		if err != nil {
			return err
		}
		if client.Authenticated() {
			mirror := api.NewMirror(client)
			publisher := checkout.NewPublisher(client)
			extra = append(extra, store.WithObserver(mirror), store.WithObserver(publisher))
			reviews = client
			workers.Add(2)
			go func() {
				defer workers.Done()
				mirror.Run(ctx)
			}()
			go func() {
				defer workers.Done()
				publisher.Run(ctx)
			}()
			slog.Info("remote sync enabled", "api", cfg.APIURL)
		} else {
			slog.Info("not signed in, remote sync disabled")
		}
	}
	defer workers.Wait()
	defer cancel()

	st, err := sess.startStore(ctx, extra...)
	if err != nil {
		return err
	}
	defer st.Stop()

	scheduler := lifecycle.New(st, lifecycle.WithDelays(cfg.AdvanceBase, cfg.AdvanceStep))
	lifecycleUpdates, unsubscribeLifecycle := st.Subscribe()
	defer unsubscribeLifecycle()
	scheduler.Reconcile(st.State())
	workers.Add(1)
	go func() {
		defer workers.Done()
		scheduler.Run(ctx, lifecycleUpdates)
	}()

	uiUpdates, unsubscribeUI := st.Subscribe()
	defer unsubscribeUI()

	model := tui.NewModel(st, cat, st.State(), uiUpdates)
	if reviews != nil {
		model = model.WithReviews(reviews)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	tuiHandler.SetProgram(program)
	defer tuiHandler.SetProgram(nil)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			program.Quit()
		case <-ctx.Done():
		}
	}()

	slog.Info("client starting", "db", cfg.Database, "orders", len(st.State().Orders()))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return WrapExitError(ExitFailure, "client error", err)
	}
	slog.Info("client stopped")
	return nil
}

// openLogHandler returns a handler sending every record to path and to
// the TUI handler. An empty path keeps only the TUI handler.
func openLogHandler(path string, verbose bool, tuiHandler slog.Handler) (slog.Handler, func(), error) {
	if path == "" {
		return tuiHandler, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return fanoutHandler{tuiHandler, fileHandler}, func() { _ = file.Close() }, nil
}

// fanoutHandler sends each record to every handler enabled for its level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(handlers))
	for i, handler := range handlers {
		out[i] = handler.WithAttrs(attrs)
	}
	return out
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(handlers))
	for i, handler := range handlers {
		out[i] = handler.WithGroup(name)
	}
	return out
}
