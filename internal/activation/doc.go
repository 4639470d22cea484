// Package activation implements the ordered, dependency-gated callback
// queue that is the heart of this repository: the Queue accepts
// activations in the order callers submit them and guarantees each one's
// callback chain runs exactly once, in that same order, only once every
// prerequisite (a registered callback, a registered data factory if one is
// named, and a settled wait-promise if one was attached) is satisfied.
//
// # Why Activation Exists
//
// Everything upstream of this package — asset loading, envelope decoding —
// exists only to eventually call Enqueue. The queue's job is to preserve
// submission order across arbitrarily interleaved asynchronous asset loads
// and DOM mutations while still letting independent activations' waits
// resolve concurrently; see Queue.drainLoop and Queue.stepOnce in queue.go
// for the algorithm.
//
// # Relationship with Other Components
//
//   - internal/callbacks supplies the readiness checks (is there a
//     callback for this class, a factory for this data-hash) and is asked
//     to re-check the head on every new registration via RequestDrain.
//   - internal/host supplies the DOM scan that locates an activation's
//     instance elements at execution time.
//   - internal/future supplies the wait-promise and observing-promise
//     primitives.
package activation
