package assets

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/djcmanager/djcmanager/internal/future"
	"github.com/djcmanager/djcmanager/internal/host"
)

// LoadResult is what LoadScript/LoadStylesheet hand back to the caller: the
// DOM element that was (or would have been) inserted, and a future that
// settles once the element has finished loading.
type LoadResult struct {
	Element host.Element
	Loaded  *future.Future[struct{}]
}

type waiterKey struct {
	kind Kind
	url  string
}

// Registry is the asset registry and loader described in spec.md §4.1. It
// owns two independent sets of known-loaded URLs (one per Kind) plus a map
// of shared waiters keyed by (kind, url) — the authoritative key per
// spec.md §9's resolution of the source's inconsistent keying.
type Registry struct {
	mu      sync.Mutex
	host    host.Host
	loaded  map[waiterKey]struct{}
	waiters map[waiterKey]*future.Future[struct{}]
}

// NewRegistry returns a Registry that performs DOM operations against h.
func NewRegistry(h host.Host) *Registry {
	return &Registry{
		host:    h,
		loaded:  make(map[waiterKey]struct{}),
		waiters: make(map[waiterKey]*future.Future[struct{}]),
	}
}

// Reset clears all loaded/waiter state. Test-only: the public contract of
// this package has no equivalent operation, since loadedness is meant to
// be monotonic for the lifetime of a document.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = make(map[waiterKey]struct{})
	r.waiters = make(map[waiterKey]*future.Future[struct{}])
}

// MarkLoaded records url as loaded under kind and resolves any waiter
// already registered for it. Resolving an already-resolved future is a
// no-op (future.Future.Resolve fires at most once), so calling MarkLoaded
// twice for the same (kind,url) is safe and required to be idempotent.
func (r *Registry) MarkLoaded(kind Kind, url string) error {
	if !kind.valid() {
		return &BadKindError{Kind: kind}
	}
	r.mu.Lock()
	key := waiterKey{kind, url}
	r.loaded[key] = struct{}{}
	w := r.waiters[key]
	r.mu.Unlock()

	if w != nil {
		w.Resolve(struct{}{})
	}
	return nil
}

// IsLoaded reports whether url has been marked loaded under kind.
func (r *Registry) IsLoaded(kind Kind, url string) (bool, error) {
	if !kind.valid() {
		return false, &BadKindError{Kind: kind}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.loaded[waiterKey{kind, url}]
	return ok, nil
}

func (r *Registry) isLoadedLocked(kind Kind, url string) bool {
	_, ok := r.loaded[waiterKey{kind, url}]
	return ok
}

// getOrCreateWaiter returns the shared waiter future for (kind,url),
// creating it on first use. Must be called with r.mu held.
func (r *Registry) getOrCreateWaiter(kind Kind, url string) *future.Future[struct{}] {
	key := waiterKey{kind, url}
	if w, ok := r.waiters[key]; ok {
		return w
	}
	w := future.New[struct{}]()
	r.waiters[key] = w
	return w
}

// LoadScript implements spec.md §4.1's loadScript. tag.Tag must be
// "script".
func (r *Registry) LoadScript(tag TagDescriptor) (LoadResult, error) {
	if tag.Tag != KindScript.tag() {
		return LoadResult{}, &BadTagError{Want: KindScript.tag(), Got: tag.Tag}
	}

	src, hasSrc := tag.urlFromAttrs(KindScript)

	if hasSrc {
		r.mu.Lock()
		already := r.isLoadedLocked(KindScript, src)
		r.mu.Unlock()
		if already {
			el := r.host.CreateElement(tag.Tag, tag.Attrs, tag.Content)
			return LoadResult{Element: el, Loaded: future.Resolved(struct{}{})}, nil
		}
	}

	el := r.host.CreateElement(tag.Tag, tag.Attrs, tag.Content)

	if !hasSrc {
		// Inline-only script: appended but not tracked as an asset.
		r.host.AppendBody(el)
		return LoadResult{Element: el, Loaded: future.Resolved(struct{}{})}, nil
	}

	// Mark loaded at insertion time, not at browser-reported completion —
	// see SPEC_FULL.md §9's Open Question decision on this exact point.
	if err := r.MarkLoaded(KindScript, src); err != nil {
		return LoadResult{}, err
	}
	r.host.AppendBody(el)

	loaded := future.New[struct{}]()
	loadCh := r.host.FireLoad(el)
	go func() {
		err := <-loadCh
		if err != nil {
			loaded.Reject(err)
			return
		}
		loaded.Resolve(struct{}{})
	}()

	return LoadResult{Element: el, Loaded: loaded}, nil
}

// LoadStylesheet implements spec.md §4.1's loadStylesheet. tag.Tag must be
// "link". It returns a nil *LoadResult (per spec.md: "return nothing") when
// the href is already loaded.
func (r *Registry) LoadStylesheet(tag TagDescriptor) (*LoadResult, error) {
	if tag.Tag != KindStylesheet.tag() {
		return nil, &BadTagError{Want: KindStylesheet.tag(), Got: tag.Tag}
	}

	href, hasHref := tag.urlFromAttrs(KindStylesheet)
	if hasHref {
		r.mu.Lock()
		already := r.isLoadedLocked(KindStylesheet, href)
		r.mu.Unlock()
		if already {
			return nil, nil
		}
	}

	el := r.host.CreateElement(tag.Tag, tag.Attrs, tag.Content)
	r.host.AppendHead(el)
	if hasHref {
		if err := r.MarkLoaded(KindStylesheet, href); err != nil {
			return nil, err
		}
	}
	// Stylesheets are fire-and-forget; no load waiting per spec.md §4.1.
	return &LoadResult{Element: el, Loaded: future.Resolved(struct{}{})}, nil
}

// WaitFor returns a future that resolves once every url in urls is loaded
// under kind. Already-loaded URLs contribute immediately; others share the
// registry's per-(kind,url) waiter.
func (r *Registry) WaitFor(ctx context.Context, kind Kind, urls []string) *future.Future[struct{}] {
	if !kind.valid() {
		return future.Rejected[struct{}](&BadKindError{Kind: kind})
	}

	var pending []*future.Future[struct{}]
	r.mu.Lock()
	for _, url := range urls {
		if r.isLoadedLocked(kind, url) {
			continue
		}
		pending = append(pending, r.getOrCreateWaiter(kind, url))
	}
	r.mu.Unlock()

	if len(pending) == 0 {
		return future.Resolved(struct{}{})
	}

	result := future.New[struct{}]()
	go func() {
		g, gctx := errgroup.WithContext(ctx)
		for _, w := range pending {
			w := w
			g.Go(func() error {
				_, err := w.Wait(gctx)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			result.Reject(err)
			return
		}
		result.Resolve(struct{}{})
	}()
	return result
}
