// Package manager wires the asset registry, callback registry, activation
// queue and envelope ingestor behind a single cohesive type, the way the
// teacher's internal/app.App wires its registry, config and executor
// together behind one constructor. Manager is the type a CLI entrypoint
// or any other host program actually depends on; everything below it is
// an implementation detail reachable through Manager's fields and
// passthrough methods.
package manager
