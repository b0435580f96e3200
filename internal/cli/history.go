package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/state"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Kind string // optional - filter to one action kind
}

// HistoryEntry is one journaled dispatch in output form.
type HistoryEntry struct {
	Seq        int64           `json:"seq"`
	Type       state.Kind      `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// HistoryResult holds the history output.
type HistoryResult struct {
	Entries []HistoryEntry     `json:"entries"`
	Counts  map[state.Kind]int `json:"counts"`
	LastSeq int64              `json:"last_seq"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled actions",
		Long: `List every action recorded in the journal, in dispatch order.

Examples:
  feastverse history
  feastverse history --kind PLACE_ORDER
  feastverse history --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "show only this action kind")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	entries, err := sess.journal.Entries(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	counts, err := sess.journal.CountByKind(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count journal entries", err)
	}

	result := HistoryResult{Entries: []HistoryEntry{}, Counts: counts}
	for _, e := range entries {
		result.LastSeq = e.Seq
		if opts.Kind != "" && string(e.Action.Kind()) != opts.Kind {
			continue
		}
		record, err := state.EncodeAction(e.Action)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to encode entry %d", e.Seq), err)
		}
		var tagged struct {
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(record, &tagged); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to encode entry %d", e.Seq), err)
		}
		result.Entries = append(result.Entries, HistoryEntry{
			Seq:        e.Seq,
			Type:       e.Action.Kind(),
			Payload:    tagged.Payload,
			RecordedAt: e.RecordedAt,
		})
	}

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(result, func(w io.Writer) {
		writeHistoryText(w, result)
	})
}

func writeHistoryText(w io.Writer, result HistoryResult) {
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "No actions journaled.")
		return
	}

	for _, e := range result.Entries {
		fmt.Fprintf(w, "[%d] %s %s", e.Seq, e.RecordedAt.UTC().Format(time.RFC3339), e.Type)
		if len(e.Payload) > 0 {
			fmt.Fprintf(w, " %s", e.Payload)
		}
		fmt.Fprintln(w)
	}

	kinds := make([]string, 0, len(result.Counts))
	for k := range result.Counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d action(s), last seq %d\n", len(result.Entries), result.LastSeq)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-22s %d\n", k, result.Counts[state.Kind(k)])
	}
}
