package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/feastverse/internal/state"
)

// Entry is one journaled dispatch.
type Entry struct {
	Seq        int64
	Action     state.Action
	RecordedAt time.Time
}

// Entries returns every entry ordered by seq.
//
// Returns an empty slice (not nil) for an empty journal. A row whose
// record no longer decodes fails the whole read with a *state.DecodeError
// naming the seq.
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, record, recorded_at
		FROM actions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e          Entry
		record     string
		recordedAt string
	)
	if err := rows.Scan(&e.Seq, &record, &recordedAt); err != nil {
		return Entry{}, fmt.Errorf("scan action: %w", err)
	}

	a, err := state.DecodeAction([]byte(record))
	if err != nil {
		return Entry{}, fmt.Errorf("action seq %d: %w", e.Seq, err)
	}
	e.Action = a

	at, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("action seq %d: parse recorded_at: %w", e.Seq, err)
	}
	e.RecordedAt = at
	return e, nil
}

// LastSeq returns the highest recorded seq, or 0 for an empty journal.
func (j *Journal) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := j.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM actions`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

// CountByKind returns how many entries each action kind has.
func (j *Journal) CountByKind(ctx context.Context) (map[state.Kind]int, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT kind, COUNT(*)
		FROM actions
		GROUP BY kind
		ORDER BY kind
	`)
	if err != nil {
		return nil, fmt.Errorf("count actions: %w", err)
	}
	defer rows.Close()

	counts := make(map[state.Kind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[state.Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}
