package activation

import (
	"sync/atomic"
	"time"

	"github.com/djcmanager/djcmanager/internal/future"
)

// state names the positions in the activation state machine of spec.md
// §4.3.6.
type state int32

const (
	stateQueued state = iota
	stateReady
	stateExecuting
	stateResolved
	stateRejected
	stateFlushed
)

func (s state) String() string {
	switch s {
	case stateQueued:
		return "queued"
	case stateReady:
		return "ready"
	case stateExecuting:
		return "executing"
	case stateResolved:
		return "resolved"
	case stateRejected:
		return "rejected"
	case stateFlushed:
		return "flushed"
	default:
		return "unknown"
	}
}

// item is one entry in the activation queue.
type item struct {
	id         Identity
	seq        uint64
	enqueuedAt time.Time
	wait       *future.Future[struct{}]
	obs        *future.Future[any]
	state      atomic.Int32
}

func newItem(id Identity, seq uint64, enqueuedAt time.Time, wait *future.Future[struct{}]) *item {
	it := &item{
		id:         id,
		seq:        seq,
		enqueuedAt: enqueuedAt,
		wait:       wait,
		obs:        future.New[any](),
	}
	it.state.Store(int32(stateQueued))
	return it
}

func (it *item) ledgerKey() ledgerKey { return ledgerKey{id: it.id, seq: it.seq} }

func (it *item) setState(s state) { it.state.Store(int32(s)) }

func (it *item) getState() state { return state(it.state.Load()) }
