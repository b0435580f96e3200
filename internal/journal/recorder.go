package journal

import (
	"context"

	"github.com/roach88/feastverse/internal/store"
)

// Recorder is a store observer that appends every dispatch to a journal,
// no-ops included, so seq numbers stay contiguous.
type Recorder struct {
	j *Journal
}

// NewRecorder returns an observer writing to j.
func NewRecorder(j *Journal) *Recorder {
	return &Recorder{j: j}
}

var _ store.Observer = (*Recorder)(nil)

// Observe appends ev.
func (r *Recorder) Observe(ctx context.Context, ev store.Event) error {
	return r.j.Append(ctx, ev.Seq, ev.Action, ev.At)
}
