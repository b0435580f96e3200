package checkout

import (
	"context"
	"log/slog"

	"github.com/roach88/feastverse/internal/api"
	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
	"github.com/roach88/feastverse/internal/store"
)

// OrderService submits orders and their status steps to the remote service.
type OrderService interface {
	CreateOrder(ctx context.Context, oc api.OrderCreate) (*api.Order, error)
	AdvanceOrder(ctx context.Context, id string) (*api.Order, error)
}

const publishQueueSize = 16

type publishCall struct {
	seq   int64
	id    string
	order api.OrderCreate
	// advance is set for a lifecycle step; status is the local status
	// after the step.
	advance bool
	status  domain.OrderStatus
}

// Publisher is a store observer that submits every locally placed order
// to the remote service and mirrors each local lifecycle step onto the
// remote copy. The local order and its simulated lifecycle are
// authoritative; a failed call is logged and not retried.
type Publisher struct {
	service OrderService
	calls   chan publishCall
	// remote maps local order ids to remote ids. Only Run touches it.
	remote map[string]string
}

// NewPublisher creates a Publisher submitting through service.
func NewPublisher(service OrderService) *Publisher {
	return &Publisher{
		service: service,
		calls:   make(chan publishCall, publishQueueSize),
		remote:  make(map[string]string),
	}
}

var _ store.Observer = (*Publisher)(nil)

// Observe queues the order created by a PLACE_ORDER dispatch and every
// effective ADVANCE_ORDER_STATUS. It never blocks.
func (p *Publisher) Observe(_ context.Context, ev store.Event) error {
	if !ev.Changed() {
		return nil
	}
	var call publishCall
	switch a := ev.Action.(type) {
	case state.PlaceOrder:
		o, ok := ev.Next.Order(a.OrderID)
		if !ok {
			return nil
		}
		call = publishCall{seq: ev.Seq, id: o.ID, order: OrderRequest(o)}
	case state.AdvanceOrderStatus:
		o, ok := ev.Next.Order(a.OrderID)
		if !ok {
			return nil
		}
		call = publishCall{seq: ev.Seq, id: o.ID, advance: true, status: o.Status}
	default:
		return nil
	}

	select {
	case p.calls <- call:
	default:
		slog.Error("order publish queue full, dropping call", "seq", ev.Seq, "order", call.id, "advance", call.advance)
	}
	return nil
}

// Run processes queued calls in dispatch order until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case call := <-p.calls:
			if call.advance {
				p.advance(ctx, call)
			} else {
				p.create(ctx, call)
			}
		}
	}
}

func (p *Publisher) create(ctx context.Context, call publishCall) {
	remote, err := p.service.CreateOrder(ctx, call.order)
	if err != nil {
		slog.Error("order publish failed", "seq", call.seq, "order", call.id, "error", err)
		return
	}
	p.remote[call.id] = remote.ID
	slog.Debug("order published", "seq", call.seq, "order", call.id, "remote_id", remote.ID)
}

func (p *Publisher) advance(ctx context.Context, call publishCall) {
	remoteID, ok := p.remote[call.id]
	if !ok {
		slog.Debug("order advance not mirrored, no remote copy", "seq", call.seq, "order", call.id)
		return
	}
	if call.status.Terminal() {
		delete(p.remote, call.id)
	}
	remote, err := p.service.AdvanceOrder(ctx, remoteID)
	if err != nil {
		slog.Error("order advance failed", "seq", call.seq, "order", call.id, "remote_id", remoteID, "error", err)
		return
	}
	slog.Debug("order advanced", "seq", call.seq, "order", call.id, "remote_id", remoteID, "status", remote.Status)
}
