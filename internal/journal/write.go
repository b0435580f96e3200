package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/feastverse/internal/state"
)

// Append records one processed dispatch.
// Uses ON CONFLICT(seq) DO NOTHING for idempotency - a seq already present
// is silently kept as first written.
//
// The action must already be stamped (see store.Store); an unstamped
// PLACE_ORDER would replay with a different id.
func (j *Journal) Append(ctx context.Context, seq int64, a state.Action, at time.Time) error {
	if seq <= 0 {
		return fmt.Errorf("append: seq must be positive, got %d", seq)
	}
	record, err := state.EncodeAction(a)
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO actions (seq, kind, record, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		seq,
		string(a.Kind()),
		string(record),
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}
	return nil
}

// Truncate deletes every entry. Credentials are kept.
func (j *Journal) Truncate(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM actions`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}
