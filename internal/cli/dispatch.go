package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/feastverse/internal/state"
)

// DispatchOptions holds flags for the dispatch command.
type DispatchOptions struct {
	*RootOptions
	Reset bool
}

// DispatchResult is the JSON payload of the dispatch command.
type DispatchResult struct {
	Applied int            `json:"applied"`
	Changed int            `json:"changed"`
	Seq     int64          `json:"seq"`
	State   state.Snapshot `json:"state"`
}

// NewDispatchCommand creates the dispatch command.
func NewDispatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DispatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dispatch [action-json...]",
		Short: "Apply actions to the journaled state",
		Long: `Apply one or more tagged actions to the state restored from the journal.

Each action is a JSON record {"type": KIND, "payload": ...}. Actions are
read from the arguments, or from stdin when there are none. Every action
is validated before any is applied; applied actions are journaled.

Examples:
  feastverse dispatch '{"type":"NAVIGATE","payload":{"route":"cart"}}'
  feastverse dispatch '{"type":"SET_ADDRESS","payload":"1 Main St"}'
  cat actions.jsonl | feastverse dispatch --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "clear the journal before applying")

	return cmd
}

func runDispatch(opts *DispatchOptions, args []string, cmd *cobra.Command) error {
	setupLogging(cmd.ErrOrStderr(), opts.Verbose)
	ctx := cmd.Context()

	var (
		actions []state.Action
		err     error
	)
	if len(args) > 0 {
		actions, err = decodeActions(strings.NewReader(strings.Join(args, "\n")))
	} else {
		actions, err = decodeActions(cmd.InOrStdin())
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid action", err)
	}
	if len(actions) == 0 && !opts.Reset {
		return NewExitError(ExitCommandError, "no actions given")
	}

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer sess.Close()

	if opts.Reset {
		if err := sess.journal.Truncate(ctx); err != nil {
			return WrapExitError(ExitCommandError, "failed to reset journal", err)
		}
	}

	st, err := sess.startStore(ctx)
	if err != nil {
		return err
	}
	defer st.Stop()

	result := DispatchResult{}
	current := st.State()
	for _, a := range actions {
		next, err := st.DispatchWait(ctx, a)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("dispatch %s", a.Kind()), err)
		}
		result.Applied++
		if next != current {
			result.Changed++
		}
		current = next
	}
	result.Seq = st.Seq()
	result.State = current.Snapshot()

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Applied %d action(s), %d changed state (seq %d)\n\n", result.Applied, result.Changed, result.Seq)
		writeState(w, current)
	})
}

// decodeActions reads a stream of concatenated tagged records. Every
// record must decode.
func decodeActions(r io.Reader) ([]state.Action, error) {
	dec := json.NewDecoder(r)
	var actions []state.Action
	for i := 0; ; i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return actions, nil
			}
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			var batch []json.RawMessage
			if err := json.Unmarshal(raw, &batch); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			for j, item := range batch {
				a, err := state.DecodeAction(item)
				if err != nil {
					return nil, fmt.Errorf("record %d[%d]: %w", i, j, err)
				}
				actions = append(actions, a)
			}
			continue
		}
		a, err := state.DecodeAction(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		actions = append(actions, a)
	}
}

// writeState prints a human-readable summary of s.
func writeState(w io.Writer, s *state.State) {
	fmt.Fprintf(w, "Route: %s", s.Route())
	if params := s.Params(); len(params) > 0 {
		data, _ := json.Marshal(params)
		fmt.Fprintf(w, " %s", data)
	}
	fmt.Fprintln(w)

	address := s.Address()
	if address == "" {
		address = "(none)"
	}
	fmt.Fprintf(w, "Address: %s\n", address)

	cart := s.Cart()
	fmt.Fprintf(w, "Cart: %d item(s)\n", cart.Count())
	for _, line := range cart.Lines() {
		fmt.Fprintf(w, "  %d × %s (%s) $%.2f\n", line.Qty, line.MenuItem.Name, line.MenuItem.ID, line.LineTotal())
	}

	orders := s.Orders()
	fmt.Fprintf(w, "Orders: %d\n", len(orders))
	for _, o := range orders {
		fmt.Fprintf(w, "  %s  %-10s  $%.2f  %d min\n", o.ID, o.Status, o.Total, o.EtaMins)
	}

	fmt.Fprintf(w, "Likes: %s\n", strings.Join(s.Likes().IDs(), ", "))
	fmt.Fprintf(w, "Follows: %s\n", strings.Join(s.Follows().IDs(), ", "))
	fmt.Fprintf(w, "Subscriptions: %s\n", strings.Join(s.Subscriptions().IDs(), ", "))
}
