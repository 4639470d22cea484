// Package envelope decodes and ingests the data blocks a server-rendered
// document embeds to describe which assets to load, which components to
// activate, and with what data. Each envelope is carried as the base64-
// encoded JSON text content of a marker element; Decode turns that text
// into an Envelope, and Ingestor drives one envelope's worth of asset
// loads and callback registrations through to a single combined
// wait-promise per spec.md §4.4.
//
// Ingestor.Scan performs the one-time startup sweep of whatever envelope
// elements are already present when the manager starts; Ingestor.Watch
// keeps consuming newly inserted ones for the lifetime of the document,
// deduplicating by a key built from the element's id attribute, src
// attribute and text content, so a mutation observed twice (or an element
// present at both scan and watch time) is only ever processed once. Two
// distinct envelope elements with the same id, src and text are likewise
// processed only once.
package envelope
