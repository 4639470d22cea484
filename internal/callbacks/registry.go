package callbacks

import (
	"context"
	"sync"

	"github.com/zclconf/go-cty/cty"

	"github.com/djcmanager/djcmanager/internal/host"
)

// Context is the per-activation context record passed to every callback in
// a chain, per spec.md §4.3.4 step 4.
type Context struct {
	Name string
	ID   string
	Els  []host.Element
}

// Fn is a single registered component callback. data is the fresh object
// produced by the activation's data factory (cty.NilVal if the activation
// has no data-hash). The return value may itself be an error, in which
// case the whole activation fails (spec.md §4.3.4 step 5).
type Fn func(ctx context.Context, data cty.Value, c Context) (any, error)

// DataFactory is a nullary function producing a fresh data object, invoked
// at execution time per spec.md §4.3.4 step 3.
type DataFactory func() (cty.Value, error)

// Drainer is the minimal surface callbacks needs from the activation
// queue: "something may have just become ready, check the head again".
// Decoupling the direction this way mirrors the teacher's own
// internal/registry, which has no dependency on its executor.
type Drainer interface {
	RequestDrain()
}

type factoryKey struct {
	classID  string
	dataHash string
}

// Registry holds the ComponentCallbackList and DataFactoryMap of
// spec.md §3.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[string][]Fn
	factories map[factoryKey]DataFactory
	drain     Drainer
}

// New returns an empty Registry. drain is notified after every
// registration; it may be nil and bound later with SetDrainer, which
// breaks the construction cycle between this package and
// internal/activation (the queue needs a *Registry to read, the registry
// needs the queue as its Drainer).
func New(drain Drainer) *Registry {
	return &Registry{
		callbacks: make(map[string][]Fn),
		factories: make(map[factoryKey]DataFactory),
		drain:     drain,
	}
}

// SetDrainer binds (or rebinds) the Drainer notified after every
// registration.
func (r *Registry) SetDrainer(drain Drainer) {
	r.mu.Lock()
	r.drain = drain
	r.mu.Unlock()
}

// RegisterCallback appends fn to classID's callback list, creating the list
// if this is the first registration for classID. Order of append is
// preserved (spec.md §3's invariant for ComponentCallbackList).
func (r *Registry) RegisterCallback(classID string, fn Fn) {
	r.mu.Lock()
	r.callbacks[classID] = append(r.callbacks[classID], fn)
	r.mu.Unlock()
	r.requestDrain()
}

// RegisterDataFactory stores fn under (classID,dataHash), overwriting any
// previous binding for that exact key (last-writer-wins, per spec.md §3).
func (r *Registry) RegisterDataFactory(classID, dataHash string, fn DataFactory) {
	r.mu.Lock()
	r.factories[factoryKey{classID, dataHash}] = fn
	r.mu.Unlock()
	r.requestDrain()
}

// Callbacks returns classID's callback list (nil if none registered). The
// returned slice must not be mutated by the caller.
func (r *Registry) Callbacks(classID string) []Fn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.callbacks[classID]
}

// HasCallbacks reports whether classID has at least one registered
// callback — condition 1 of the readiness predicate in spec.md §4.3.2.
func (r *Registry) HasCallbacks(classID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks[classID]) > 0
}

// DataFactory returns the factory registered for (classID,dataHash), if
// any — condition 2 of the readiness predicate in spec.md §4.3.2.
func (r *Registry) DataFactory(classID, dataHash string) (DataFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.factories[factoryKey{classID, dataHash}]
	return fn, ok
}

func (r *Registry) requestDrain() {
	r.mu.RLock()
	drain := r.drain
	r.mu.RUnlock()
	if drain != nil {
		drain.RequestDrain()
	}
}
