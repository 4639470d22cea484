// Package callbacks holds the two registries described in spec.md §4.2:
// the per-component-class list of callback functions, and the per-
// (component-class, data-hash) data factory. Both are append/overwrite
// registries with no ordering constraint against each other; their only
// side effect beyond storing the registration is asking the drain loop to
// re-check the queue head, since a new registration may be exactly what an
// already-enqueued activation was waiting on.
package callbacks
