package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/feastverse/internal/state"
)

// Replay rebuilds state by reducing every entry, in seq order, from
// state.Initial(). Returns the state and the last seq applied.
func (j *Journal) Replay(ctx context.Context) (*state.State, int64, error) {
	entries, err := j.Entries(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("replay: %w", err)
	}

	s := state.Initial()
	var last int64
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, 0, fmt.Errorf("replay: %w", err)
		}
		s = state.Reduce(s, e.Action)
		last = e.Seq
	}
	return s, last, nil
}

// ReplayResult compares two independent replays of the same journal.
type ReplayResult struct {
	Entries       int
	LastSeq       int64
	Deterministic bool
	State         *state.State
}

// VerifyReplay replays the journal twice and reports whether both runs
// produced byte-identical snapshots.
func (j *Journal) VerifyReplay(ctx context.Context) (ReplayResult, error) {
	entries, err := j.Entries(ctx)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}

	first, last, err := j.Replay(ctx)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}
	second, _, err := j.Replay(ctx)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}

	a, err := json.Marshal(first.Snapshot())
	if err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}
	b, err := json.Marshal(second.Snapshot())
	if err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}

	return ReplayResult{
		Entries:       len(entries),
		LastSeq:       last,
		Deterministic: bytes.Equal(a, b),
		State:         first,
	}, nil
}
