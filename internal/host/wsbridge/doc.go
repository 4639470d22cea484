// Package wsbridge implements host.Host as a socket.io client connected to
// a relay that a real browser page joins as its own socket.io client. The
// browser side (a small injected script, out of scope for this repository
// per spec.md's "server-side HTML generation... treated as a producer") is
// responsible for forwarding MutationObserver records as "dom:mutation"
// events and for executing "dom:command" events this package emits.
//
// This mirrors the connect/timeout/event-listener lifecycle of
// modules/socketio_client in the teacher repository, generalized from a
// one-shot resource handler into a long-lived bridge that keeps running for
// the lifetime of the manager.
package wsbridge
