// Package future provides a first-class settled latch: a single-assignment
// container that resolves exactly once with either a value or an error.
//
// The source system this repository is modeled on (a JavaScript scheduler
// built on Promises) has no equivalent primitive visible to the host
// language's type system, so it keeps a side-table recording whether a
// promise has settled and with what outcome. Go has no Promise either, but
// it does let us build the obvious primitive directly: a struct with a
// done channel and a sync.Once-guarded resolver. Every asset waiter and
// every activation's wait-promise and observing-promise in this repository
// is one of these.
package future
