package activation

import "sync"

// ledgerKey identifies one Enqueue call. Identity alone is not unique
// enough — the same (class, instance, data-hash) tuple can legitimately be
// enqueued more than once — so every call also carries the queue's
// monotonically increasing seq counter.
type ledgerKey struct {
	id  Identity
	seq uint64
}

type outcome struct {
	failed bool
	err    error
}

// ledger is the PromiseCompletionLedger: a side index of wait-promise
// outcomes the drain loop consults without blocking on the future itself.
// It is written once per key (by the wait-promise's OnSettle continuation)
// and read, then deleted, by the drain loop.
type ledger struct {
	mu sync.Mutex
	m  map[ledgerKey]outcome
}

func newLedger() *ledger {
	return &ledger{m: make(map[ledgerKey]outcome)}
}

func (l *ledger) setSuccess(k ledgerKey) {
	l.mu.Lock()
	l.m[k] = outcome{failed: false}
	l.mu.Unlock()
}

func (l *ledger) setFailure(k ledgerKey, err error) {
	l.mu.Lock()
	l.m[k] = outcome{failed: true, err: err}
	l.mu.Unlock()
}

func (l *ledger) get(k ledgerKey) (outcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.m[k]
	return o, ok
}

func (l *ledger) delete(k ledgerKey) {
	l.mu.Lock()
	delete(l.m, k)
	l.mu.Unlock()
}

// clear drops every entry, used when a fatal failure flushes the whole
// queue tail.
func (l *ledger) clear() {
	l.mu.Lock()
	l.m = make(map[ledgerKey]outcome)
	l.mu.Unlock()
}
