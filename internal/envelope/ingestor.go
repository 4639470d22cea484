package envelope

import (
	"context"
	"sync"

	"github.com/zclconf/go-cty/cty"
	"golang.org/x/sync/errgroup"

	"github.com/djcmanager/djcmanager/internal/activation"
	"github.com/djcmanager/djcmanager/internal/assets"
	"github.com/djcmanager/djcmanager/internal/callbacks"
	"github.com/djcmanager/djcmanager/internal/future"
	"github.com/djcmanager/djcmanager/internal/host"
)

// envelopeSelector matches the marker elements this package scans for and
// watches the document for.
var envelopeSelector = host.Selector{Tag: "script", Attr: "data-djc-envelope"}

// Ingestor is the envelope ingestor of spec.md §4.4: it finds envelope
// elements, decodes them, drives their asset loads and data-factory
// registrations, and enqueues their component activations.
type Ingestor struct {
	host      host.Host
	assets    *assets.Registry
	callbacks *callbacks.Registry
	queue     *activation.Queue

	processed sync.Map // elementKey -> struct{}
}

// New returns an Ingestor wiring together the given registries and queue.
func New(h host.Host, a *assets.Registry, c *callbacks.Registry, q *activation.Queue) *Ingestor {
	return &Ingestor{host: h, assets: a, callbacks: c, queue: q}
}

type elementKey struct {
	tag   string
	attrs string
}

func keyOf(el host.Element) elementKey {
	id, _ := el.Attr("id")
	src, _ := el.Attr("src")
	return elementKey{tag: "envelope", attrs: id + "|" + src + "|" + el.Text()}
}

// Scan performs the startup sweep of spec.md §4.4 step 1: every currently
// present envelope element is decoded and ingested once.
func (ig *Ingestor) Scan(ctx context.Context) error {
	for _, el := range ig.host.Scan(envelopeSelector) {
		if err := ig.maybeProcess(ctx, el); err != nil {
			return err
		}
	}
	return nil
}

// Watch consumes host.Mutations() for the lifetime of ctx, ingesting every
// newly inserted envelope element exactly once.
func (ig *Ingestor) Watch(ctx context.Context) error {
	mutations := ig.host.Mutations()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case el, ok := <-mutations:
			if !ok {
				return nil
			}
			if !envelopeSelector.Matches("script", el) {
				continue
			}
			if err := ig.maybeProcess(ctx, el); err != nil {
				ig.host.Console().Error("envelope: ingest failed", "err", err)
			}
		}
	}
}

func (ig *Ingestor) maybeProcess(ctx context.Context, el host.Element) error {
	key := keyOf(el)
	if _, already := ig.processed.LoadOrStore(key, struct{}{}); already {
		return nil
	}
	return ig.process(ctx, el)
}

// process implements spec.md §4.4 steps 2-8 for a single envelope element.
func (ig *Ingestor) process(ctx context.Context, el host.Element) error {
	env, err := Decode([]byte(el.Text()))
	if err != nil {
		return err
	}

	for _, url := range env.CSSURLsMarkAsLoaded {
		if err := ig.assets.MarkLoaded(assets.KindStylesheet, url); err != nil {
			return err
		}
	}
	for _, url := range env.JSURLsMarkAsLoaded {
		if err := ig.assets.MarkLoaded(assets.KindScript, url); err != nil {
			return err
		}
	}

	for _, tag := range env.CSSTagsToFetch {
		if _, err := ig.assets.LoadStylesheet(tag); err != nil {
			return err
		}
	}

	var scriptLoads []*future.Future[struct{}]
	for _, tag := range env.JSTagsToFetch {
		lr, err := ig.assets.LoadScript(tag)
		if err != nil {
			return err
		}
		scriptLoads = append(scriptLoads, lr.Loaded)
	}

	for _, v := range env.ComponentJSVars {
		jsonText := v.JSONText
		ig.callbacks.RegisterDataFactory(v.ClassID, v.DataHash, func() (cty.Value, error) {
			return decodeJSONToCty(jsonText)
		})
	}

	wait := ig.combinedWait(ctx, scriptLoads, env.JSURLsMarkAsLoaded)

	for _, call := range env.ComponentJSCalls {
		ig.queue.Enqueue(ctx, activation.Identity{
			ClassID:    call.ClassID,
			InstanceID: call.InstanceID,
			DataHash:   call.DataHash,
		}, wait)
	}
	return nil
}

// combinedWait implements spec.md §4.4 step 6: a single wait-promise that
// settles once every script load kicked off in this envelope has finished
// and waitFor(script, already-loaded-urls) has resolved, built with one
// errgroup rather than a hand-rolled counter — the idiomatic replacement
// for the source's Promise.all.
func (ig *Ingestor) combinedWait(ctx context.Context, loads []*future.Future[struct{}], alreadyLoadedJS []string) *future.Future[struct{}] {
	result := future.New[struct{}]()
	go func() {
		g, gctx := errgroup.WithContext(ctx)
		for _, l := range loads {
			l := l
			g.Go(func() error {
				_, err := l.Wait(gctx)
				return err
			})
		}
		g.Go(func() error {
			_, err := ig.assets.WaitFor(gctx, assets.KindScript, alreadyLoadedJS).Wait(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			result.Reject(err)
			return
		}
		result.Resolve(struct{}{})
	}()
	return result
}
