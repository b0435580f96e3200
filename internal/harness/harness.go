package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/roach88/feastverse/internal/lifecycle"
	"github.com/roach88/feastverse/internal/state"
	"github.com/roach88/feastverse/internal/store"
	"github.com/roach88/feastverse/internal/testutil"
)

// Epoch is the frozen wall-clock time of every scenario run.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// stepTimeout bounds a single dispatch so a wedged store fails the run
// instead of hanging it.
const stepTimeout = 5 * time.Second

// tracer is the store observer that builds the trace.
type tracer struct {
	mu     sync.Mutex
	events []TraceEvent
}

func (t *tracer) Observe(_ context.Context, ev store.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, TraceEvent{Seq: ev.Seq, Action: ev.Action.Kind(), Changed: ev.Changed()})
	return nil
}

func (t *tracer) snapshot() []TraceEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TraceEvent{}, t.events...)
}

// Harness executes one scenario.
type Harness struct {
	store     *store.Store
	scheduler *lifecycle.Scheduler
	timers    *testutil.FakeTimers
	fired     *testutil.RecordingDispatcher
	tracer    *tracer
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh store. A malformed step aborts the run with
// an error; failed assertions are reported in the result instead.
func Run(scenario *Scenario) (*Result, error) {
	ids := scenario.OrderIDs
	if len(ids) == 0 {
		ids = defaultOrderIDs(scenario)
	}

	clock := testutil.NewDeterministicClock(Epoch, 0)
	tr := &tracer{}
	st := store.New(
		store.WithIDGenerator(store.NewFixedGenerator(ids...)),
		store.WithNow(clock.Now),
		store.WithObserver(tr),
	)

	timers := testutil.NewFakeTimers()
	fired := &testutil.RecordingDispatcher{}
	h := &Harness{
		store: st,
		scheduler: lifecycle.New(fired, lifecycle.WithTimerFunc(func(d time.Duration, f func()) lifecycle.Timer {
			return timers.AfterFunc(d, f)
		})),
		timers: timers,
		fired:  fired,
		tracer: tr,
	}
	defer h.scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = st.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for i, step := range scenario.Steps {
		if err := h.execute(ctx, step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	result := NewResult()
	result.Trace = tr.snapshot()
	result.Final = st.State()

	for _, a := range scenario.Assertions {
		if err := checkAssertion(result.Final, a); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

func (h *Harness) execute(ctx context.Context, step Step) error {
	if step.Tick {
		return h.tick(ctx)
	}
	a, err := stepAction(step)
	if err != nil {
		return err
	}
	return h.dispatch(ctx, a)
}

// tick fires each pending advancement once, then applies the resulting
// dispatches in the order they fired.
func (h *Harness) tick(ctx context.Context) error {
	h.scheduler.Reconcile(h.store.State())
	before := len(h.fired.Actions())
	h.timers.FireAll()
	for _, a := range h.fired.Actions()[before:] {
		if err := h.dispatch(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) dispatch(ctx context.Context, a state.Action) error {
	ctx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()
	if _, err := h.store.DispatchWait(ctx, a); err != nil {
		return fmt.Errorf("dispatch %s: %w", a.Kind(), err)
	}
	return nil
}

// stepAction converts a YAML step into a typed action through the tagged
// record codec, so scenarios exercise the same decoding as the CLI.
func stepAction(step Step) (state.Action, error) {
	var payload json.RawMessage
	if step.Payload != nil {
		raw, err := json.Marshal(step.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", step.Action, err)
		}
		payload = raw
	}
	return state.DecodePayload(state.Kind(step.Action), payload)
}

func defaultOrderIDs(s *Scenario) []string {
	var ids []string
	for _, step := range s.Steps {
		if step.Action == string(state.KindPlaceOrder) {
			ids = append(ids, fmt.Sprintf("ord_%d", len(ids)+1))
		}
	}
	return ids
}
