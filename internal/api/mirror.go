package api

import (
	"context"
	"log/slog"

	"github.com/roach88/feastverse/internal/state"
	"github.com/roach88/feastverse/internal/store"
)

// Remote is the subset of Client the Mirror calls.
type Remote interface {
	Follow(ctx context.Context, restaurantID string) error
	Unfollow(ctx context.Context, restaurantID string) error
	Subscribe(ctx context.Context, restaurantID string) error
	Unsubscribe(ctx context.Context, restaurantID string) error
	LikeReel(ctx context.Context, id string) (int, error)
	UnlikeReel(ctx context.Context, id string) (int, error)
}

// mirrorQueueSize bounds pending remote calls. Past it, toggles are dropped
// with an error log rather than stalling the store loop.
const mirrorQueueSize = 64

type mirrorCall struct {
	seq  int64
	kind state.Kind
	id   string
	on   bool
}

// Mirror is a store observer that replays local follow, subscription and
// like toggles against the remote service.
//
// Calls run on the Mirror's own goroutine (see Run), in dispatch order.
// Remote failures are logged; local state is never rolled back.
type Mirror struct {
	remote Remote
	calls  chan mirrorCall
}

// NewMirror creates a Mirror calling remote.
func NewMirror(remote Remote) *Mirror {
	return &Mirror{
		remote: remote,
		calls:  make(chan mirrorCall, mirrorQueueSize),
	}
}

var _ store.Observer = (*Mirror)(nil)

// Observe queues a remote call for toggles that changed state. It never
// blocks.
func (m *Mirror) Observe(_ context.Context, ev store.Event) error {
	if !ev.Changed() {
		return nil
	}

	var call mirrorCall
	switch a := ev.Action.(type) {
	case state.ToggleFollow:
		call = mirrorCall{id: a.RestaurantID, on: ev.Next.Follows().Has(a.RestaurantID)}
	case state.ToggleSubscription:
		call = mirrorCall{id: a.RestaurantID, on: ev.Next.Subscriptions().Has(a.RestaurantID)}
	case state.ToggleLike:
		call = mirrorCall{id: a.ReelID, on: ev.Next.Likes().Has(a.ReelID)}
	default:
		return nil
	}
	call.seq = ev.Seq
	call.kind = ev.Action.Kind()

	select {
	case m.calls <- call:
	default:
		slog.Error("mirror queue full, dropping remote call", "seq", call.seq, "action", call.kind, "id", call.id)
	}
	return nil
}

// Run performs queued calls until ctx is done.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case call := <-m.calls:
			if err := m.send(ctx, call); err != nil {
				slog.Error("mirror call failed", "seq", call.seq, "action", call.kind, "id", call.id, "on", call.on, "error", err)
				continue
			}
			slog.Debug("mirror call sent", "seq", call.seq, "action", call.kind, "id", call.id, "on", call.on)
		}
	}
}

func (m *Mirror) send(ctx context.Context, call mirrorCall) error {
	var err error
	switch call.kind {
	case state.KindToggleFollow:
		if call.on {
			err = m.remote.Follow(ctx, call.id)
		} else {
			err = m.remote.Unfollow(ctx, call.id)
		}
	case state.KindToggleSubscription:
		if call.on {
			err = m.remote.Subscribe(ctx, call.id)
		} else {
			err = m.remote.Unsubscribe(ctx, call.id)
		}
	case state.KindToggleLike:
		if call.on {
			_, err = m.remote.LikeReel(ctx, call.id)
		} else {
			_, err = m.remote.UnlikeReel(ctx, call.id)
		}
	}
	return err
}
