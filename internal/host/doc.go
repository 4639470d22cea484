// Package host defines the capability interface through which the rest of
// this repository touches "the document": querying for elements, creating
// and inserting new ones, and observing newly-inserted elements over time.
//
// # Why Host Exists
//
// The scheduler this repository implements (see internal/activation) was
// modeled on a system that runs inside a real browser and manipulates a
// live DOM. A Go process has no DOM. Rather than hard-code "the document"
// as a global, every package that needs to touch it depends only on this
// interface, which makes the whole scheduler testable without a browser
// and lets it run against two genuinely different backends:
//
//   - internal/host/htmldoc: an in-memory document backed by
//     golang.org/x/net/html, used by tests and by the CLI's offline
//     "-fixture" mode.
//   - internal/host/wsbridge: a live document reached over a socket.io
//     connection to a relay that a real browser session also joins.
//
// # Relationship with Other Components
//
//   - internal/assets calls CreateElement/AppendHead/AppendBody/FireLoad to
//     realize LoadScript/LoadStylesheet.
//   - internal/envelope calls Scan and consumes Mutations() to discover
//     activation envelopes.
package host
