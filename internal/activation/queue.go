package activation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/djcmanager/djcmanager/internal/callbacks"
	"github.com/djcmanager/djcmanager/internal/future"
	"github.com/djcmanager/djcmanager/internal/host"
)

// instanceAttr is the marker attribute execution scans the document for to
// locate an activation's elements, per spec.md §4.3.4 step 2.
func instanceAttr(instanceID string) string {
	return fmt.Sprintf("data-djc-id-%s", instanceID)
}

// Config carries the operator-tunable knobs of the queue. A zero Config is
// valid: StallInterval falls back to defaultStallInterval, ErrorHandler to
// defaultErrorHandler, Clock to time.Now.
type Config struct {
	StallInterval time.Duration
	ErrorHandler  ErrorHandler
	Clock         func() time.Time
}

// Queue is the activation queue and scheduler of spec.md §4.3. It accepts
// activations via Enqueue and drains them strictly in submission order,
// executing each one's callback chain only once its readiness predicate
// holds.
type Queue struct {
	mu    sync.Mutex
	items []*item

	ledger       *ledger
	callbacks    *callbacks.Registry
	host         host.Host
	errorHandler ErrorHandler
	clock        func() time.Time

	seq      atomic.Uint64
	draining atomic.Bool
	dirty    atomic.Bool

	stall     *stallReporter
	lastFatal atomic.Pointer[FatalError]
}

// New returns a Queue that scans for and operates on h, gated by cb's
// registrations. The returned Queue's stall reporter goroutine is started
// immediately; call Close to stop it.
func New(h host.Host, cb *callbacks.Registry, cfg Config) *Queue {
	errHandler := cfg.ErrorHandler
	if errHandler == nil {
		errHandler = defaultErrorHandler
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	q := &Queue{
		ledger:       newLedger(),
		callbacks:    cb,
		host:         h,
		errorHandler: errHandler,
		clock:        clock,
	}
	q.stall = newStallReporter(cfg.StallInterval, h.Console(), q.snapshotBlocked)
	go q.stall.run()
	return q
}

// Close stops the stall reporter. It does not cancel or flush any queued
// activation.
func (q *Queue) Close() {
	q.stall.Close()
}

// LastFatalError returns the most recent FatalError raised by the drain
// loop, if any, for introspection (e.g. a CLI health endpoint).
func (q *Queue) LastFatalError() *FatalError {
	return q.lastFatal.Load()
}

// Stats is a point-in-time snapshot of queue depth, used by the CLI's
// -fixture mode to report how many activations remain queued.
type Stats struct {
	Depth           int
	OldestBlockedAge time.Duration
}

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := Stats{Depth: len(q.items)}
	if len(q.items) > 0 {
		s.OldestBlockedAge = q.clock().Sub(q.items[0].enqueuedAt)
	}
	return s
}

// Enqueue implements spec.md §4.3.1: append a new activation to the tail of
// the queue, attach the wait-promise's outcome to the ledger, and return
// the future the caller observes for this activation's eventual result.
// wait may be nil, meaning the activation has no asynchronous prerequisite
// beyond its readiness predicate.
func (q *Queue) Enqueue(ctx context.Context, id Identity, wait *future.Future[struct{}]) *future.Future[any] {
	seq := q.seq.Add(1)
	it := newItem(id, seq, q.clock(), wait)

	if wait != nil {
		key := it.ledgerKey()
		wait.OnSettle(func(_ struct{}, err error) {
			if err != nil {
				q.ledger.setFailure(key, err)
			} else {
				q.ledger.setSuccess(key)
			}
			q.RequestDrain()
		})
	}

	q.mu.Lock()
	q.items = append(q.items, it)
	q.mu.Unlock()

	q.RequestDrain()
	return it.obs
}

// RequestDrain implements callbacks.Drainer. It is safe to call from any
// goroutine, including from inside a callback invoked by the drain loop
// itself (a callback's own registration may unblock the very next head).
func (q *Queue) RequestDrain() {
	q.dirty.Store(true)
	if q.draining.CompareAndSwap(false, true) {
		go q.drainLoop()
	}
}

// drainLoop is the single re-entrant-guarded drain loop of spec.md §4.3.3.
// Only one instance ever runs at a time: the atomic.Bool CAS in
// RequestDrain is the guard, mirroring the teacher's sync.Once-style
// single-fire guards in internal/node/node.go. A synchronous RequestDrain
// call made from within the loop's own callback invocation does not start
// a second loop; it instead sets the dirty bit the loop rechecks before it
// is willing to go idle, closing the race between "loop decided to stop"
// and "something just became ready".
func (q *Queue) drainLoop() {
	for {
		q.dirty.Store(false)
		for q.stepOnce() {
		}

		if !q.dirty.Load() {
			q.draining.Store(false)
			// Close the window between the CAS above and this check: if a
			// new request landed in between, pick it back up rather than
			// leaving it stranded with draining already false.
			if q.dirty.Load() && q.draining.CompareAndSwap(false, true) {
				continue
			}
			return
		}
	}
}

// stepOnce inspects the current head and, if it is ready, pops and executes
// it. It returns true if it made progress (so the caller should try
// again immediately) and false if the queue is empty, the head is not yet
// ready, or the head's wait-promise failed and the tail was just flushed.
func (q *Queue) stepOnce() bool {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return false
	}
	head := q.items[0]
	key := head.ledgerKey()

	if o, ok := q.ledger.get(key); ok && o.failed {
		flushed := q.items
		q.items = nil
		q.mu.Unlock()

		q.ledger.clear()

		fatal := &FatalError{Identity: head.id, Err: o.err}
		for _, it := range flushed {
			if it == head {
				continue
			}
			it.setState(stateFlushed)
			fatal.Flushed = append(fatal.Flushed, it.id)
			// Settled rather than left unresolved: see fail's comment below.
			it.obs.Reject(fatal)
		}
		head.setState(stateRejected)
		head.obs.Reject(fatal)
		q.lastFatal.Store(fatal)
		q.host.Console().Error("activation queue flushed after wait-promise failure",
			"identity", head.id.String(), "flushed", len(flushed), "err", o.err)
		return false
	}

	if !q.ready(head) {
		q.mu.Unlock()
		return false
	}

	q.items = q.items[1:]
	q.mu.Unlock()

	if head.wait != nil {
		q.ledger.delete(key)
	}
	head.setState(stateReady)
	q.execute(head)
	return true
}

// ready implements the 3-condition readiness predicate of spec.md §4.3.2.
// By the time this is consulted for the head, a failed wait-promise has
// already been handled by stepOnce, so a ledger entry found here (if any)
// is always a success.
func (q *Queue) ready(it *item) bool {
	if !q.callbacks.HasCallbacks(it.id.ClassID) {
		return false
	}
	if it.id.hasDataHash() {
		if _, ok := q.callbacks.DataFactory(it.id.ClassID, it.id.dataHash()); !ok {
			return false
		}
	}
	if it.wait != nil {
		o, ok := q.ledger.get(it.ledgerKey())
		if !ok || o.failed {
			return false
		}
	}
	return true
}

// execute implements spec.md §4.3.4, steps 1-6.
func (q *Queue) execute(it *item) {
	it.setState(stateExecuting)
	ctx := context.Background()

	fns := q.callbacks.Callbacks(it.id.ClassID)
	if len(fns) == 0 {
		q.fail(it, &NoCallbackError{Identity: it.id})
		return
	}

	els := q.host.Scan(host.Selector{Attr: instanceAttr(it.id.InstanceID)})
	if len(els) == 0 {
		q.fail(it, &NoElementsError{Identity: it.id})
		return
	}

	data := cty.NilVal
	if it.id.hasDataHash() {
		factory, ok := q.callbacks.DataFactory(it.id.ClassID, it.id.dataHash())
		if !ok {
			q.fail(it, &NoDataFactoryError{Identity: it.id})
			return
		}
		v, err := factory()
		if err != nil {
			q.fail(it, &CallbackFailureError{Identity: it.id, Err: err})
			return
		}
		data = v
	}

	cbCtx := callbacks.Context{Name: it.id.ClassID, ID: it.id.InstanceID, Els: els}

	var result any
	for _, fn := range fns {
		v, err := q.errorHandler(ctx, fn, data, cbCtx)
		if err != nil {
			q.fail(it, &CallbackFailureError{Identity: it.id, Err: err})
			return
		}
		result = v
	}

	it.setState(stateResolved)
	it.obs.Resolve(result)
}

// fail settles it's observing future with err and logs to the host
// console. Unlike the source's JS promise chain, an unobserved rejected
// future in Go has no "unhandled rejection" cost, so rejecting is always
// safe even when the caller never inspects the result — this repository
// both logs and rejects rather than choosing one per spec.md's "if A had
// observers" branch.
func (q *Queue) fail(it *item, err error) {
	it.setState(stateRejected)
	q.host.Console().Error("activation callback failed", "identity", it.id.String(), "err", err)
	it.obs.Reject(err)
}
