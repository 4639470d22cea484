// Package assets tracks which script and stylesheet URLs are known-loaded,
// builds and inserts the DOM nodes for new script/stylesheet tags, and lets
// callers wait for a set of URLs to become loaded.
//
// # Why Assets Exists
//
// An activation cannot safely run until every asset its envelope declared
// has either already been loaded or has finished loading. This package is
// the single source of truth for "is this URL loaded" and for the one
// moment that truth can change: insertion of the corresponding DOM node.
// Keeping that truth in one mutex-guarded registry, rather than scattered
// across callers, is what makes "mark loaded at insertion time, not at
// browser-reported completion" (see the design notes in SPEC_FULL.md §9)
// a single, auditable decision instead of a race between callers.
//
// # Relationship with Other Components
//
//   - internal/host supplies the DOM operations this package calls.
//   - internal/envelope calls MarkLoaded/LoadScript/LoadStylesheet/WaitFor
//     while processing each activation envelope.
package assets
