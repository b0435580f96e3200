package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/feastverse/internal/api"
	"github.com/roach88/feastverse/internal/domain"
	"github.com/roach88/feastverse/internal/state"
	"github.com/roach88/feastverse/internal/store"
)

type fakeService struct {
	created  chan api.OrderCreate
	advanced chan string
	err      error
}

func (f *fakeService) CreateOrder(_ context.Context, oc api.OrderCreate) (*api.Order, error) {
	f.created <- oc
	if f.err != nil {
		return nil, f.err
	}
	return &api.Order{ID: "remote-1"}, nil
}

func (f *fakeService) AdvanceOrder(_ context.Context, id string) (*api.Order, error) {
	f.advanced <- id
	return &api.Order{ID: id, Status: "pickup"}, nil
}

func runStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	st := store.New(opts...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = st.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return st
}

func TestPublisher_SubmitsPlacedOrders(t *testing.T) {
	service := &fakeService{created: make(chan api.OrderCreate, 1)}
	p := NewPublisher(service)

	st := runStore(t,
		store.WithObserver(p),
		store.WithIDGenerator(store.NewFixedGenerator("ord_1")),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	_, err := st.DispatchWait(ctx, add("m1", 5, "rest1", 2))
	require.NoError(t, err)
	_, err = st.DispatchWait(ctx, state.SetAddress{Address: "1 Main St"})
	require.NoError(t, err)
	_, err = st.DispatchWait(ctx, state.PlaceOrder{Total: 12.99, EtaMins: 25})
	require.NoError(t, err)

	select {
	case oc := <-service.created:
		assert.Equal(t, 12.99, oc.Total)
		assert.Equal(t, 25, oc.EtaMins)
		assert.Equal(t, "1 Main St", oc.Address)
		require.Len(t, oc.Items, 1)
		assert.Equal(t, 2, oc.Items[0].Quantity)
	case <-time.After(2 * time.Second):
		t.Fatal("order was not published")
	}
}

func TestPublisher_IgnoresOtherActions(t *testing.T) {
	p := NewPublisher(&fakeService{})
	s := state.Initial()
	next := state.Reduce(s, state.ToggleLike{ReelID: "r1"})

	require.NoError(t, p.Observe(context.Background(), store.Event{Seq: 1, Action: state.ToggleLike{ReelID: "r1"}, Prev: s, Next: next}))
	assert.Len(t, p.calls, 0)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	p := NewPublisher(&fakeService{})
	s := state.Initial()

	for i := 0; i < publishQueueSize+3; i++ {
		a := state.PlaceOrder{OrderID: "ord", Total: 1, EtaMins: 1}
		next := state.Reduce(s, a)
		require.NoError(t, p.Observe(context.Background(), store.Event{Seq: int64(i + 1), Action: a, Prev: s, Next: next}))
	}
	assert.Len(t, p.calls, publishQueueSize)
}

func TestPublisher_FailureDoesNotStopRun(t *testing.T) {
	service := &fakeService{created: make(chan api.OrderCreate, 2), err: errors.New("boom")}
	p := NewPublisher(service)
	p.calls <- publishCall{seq: 1, id: "a"}
	p.calls <- publishCall{seq: 2, id: "b"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-service.created:
		case <-time.After(2 * time.Second):
			t.Fatal("publisher stopped after a failure")
		}
	}
}

func TestPublisher_MirrorsLifecycleOntoRemoteID(t *testing.T) {
	service := &fakeService{created: make(chan api.OrderCreate, 1), advanced: make(chan string, 4)}
	p := NewPublisher(service)

	st := runStore(t,
		store.WithObserver(p),
		store.WithIDGenerator(store.NewFixedGenerator("ord_1")),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	_, err := st.DispatchWait(ctx, add("m1", 5, "rest1", 1))
	require.NoError(t, err)
	_, err = st.DispatchWait(ctx, state.PlaceOrder{Total: 5, EtaMins: 20})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = st.DispatchWait(ctx, state.AdvanceOrderStatus{OrderID: "ord_1"})
		require.NoError(t, err)
	}
	// Delivered orders stay put, so this one is not mirrored.
	_, err = st.DispatchWait(ctx, state.AdvanceOrderStatus{OrderID: "ord_1"})
	require.NoError(t, err)

	<-service.created
	for i := 0; i < 3; i++ {
		select {
		case id := <-service.advanced:
			assert.Equal(t, "remote-1", id)
		case <-time.After(2 * time.Second):
			t.Fatalf("advance %d was not mirrored", i+1)
		}
	}
	assert.Eventually(t, func() bool { return len(p.calls) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, service.advanced, 0)
}

func TestPublisher_SkipsAdvanceWithoutRemoteCopy(t *testing.T) {
	service := &fakeService{created: make(chan api.OrderCreate, 1), advanced: make(chan string, 1), err: errors.New("boom")}
	p := NewPublisher(service)
	p.calls <- publishCall{seq: 1, id: "ord_1"}
	p.calls <- publishCall{seq: 2, id: "ord_1", advance: true, status: domain.StatusPickup}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	<-service.created
	assert.Eventually(t, func() bool { return len(p.calls) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return len(service.advanced) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
