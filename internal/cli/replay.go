package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/state"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Verify bool
}

// ReplayResult holds the replay output.
type ReplayResult struct {
	Entries       int            `json:"entries"`
	LastSeq       int64          `json:"last_seq"`
	Verified      bool           `json:"verified"`
	Deterministic bool           `json:"deterministic"`
	State         state.Snapshot `json:"state"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild state from the journal",
		Long: `Rebuild state by reducing every journaled action from the initial state.

With --verify the journal is replayed twice and both results compared;
any difference means replay is not deterministic.

Exit codes:
  0 - Replay succeeded (and was deterministic)
  1 - Determinism verification failed
  2 - Command error (journal unreadable, etc.)

Examples:
  feastverse replay
  feastverse replay --verify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "replay twice and compare")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	var (
		result ReplayResult
		final  *state.State
	)
	if opts.Verify {
		vr, err := sess.journal.VerifyReplay(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to replay journal", err)
		}
		result = ReplayResult{
			Entries:       vr.Entries,
			LastSeq:       vr.LastSeq,
			Verified:      true,
			Deterministic: vr.Deterministic,
		}
		final = vr.State
	} else {
		s, last, err := sess.journal.Replay(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to replay journal", err)
		}
		entries, err := sess.journal.Entries(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		result = ReplayResult{Entries: len(entries), LastSeq: last, Deterministic: true}
		final = s
	}
	result.State = final.Snapshot()

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if !result.Deterministic {
		if err := f.Error("E_DETERMINISM", "determinism verification failed", result); err != nil {
			return err
		}
		// Determinism failure = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Replayed %d action(s) through seq %d\n", result.Entries, result.LastSeq)
		if result.Verified {
			fmt.Fprintln(w, "✓ Replay verified deterministic")
		}
		fmt.Fprintln(w)
		writeState(w, final)
	})
}
