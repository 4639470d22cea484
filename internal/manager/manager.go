package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/djcmanager/djcmanager/internal/activation"
	"github.com/djcmanager/djcmanager/internal/assets"
	"github.com/djcmanager/djcmanager/internal/callbacks"
	"github.com/djcmanager/djcmanager/internal/ctxlog"
	"github.com/djcmanager/djcmanager/internal/envelope"
	"github.com/djcmanager/djcmanager/internal/host"
)

// Manager is the public surface of this repository's component
// bootstrapping and dependency management: register callbacks and data
// factories, load assets, and let Start drive the document's envelopes
// through to activation.
type Manager struct {
	Assets    *assets.Registry
	Callbacks *callbacks.Registry
	Queue     *activation.Queue
	Ingestor  *envelope.Ingestor

	host host.Host
}

// New wires a fresh Manager around h. cfg configures the activation
// queue's stall reporter and error handler.
func New(h host.Host, cfg activation.Config) *Manager {
	a := assets.NewRegistry(h)
	cb := callbacks.New(nil)
	q := activation.New(h, cb, cfg)
	cb.SetDrainer(q)
	ig := envelope.New(h, a, cb, q)

	return &Manager{
		Assets:    a,
		Callbacks: cb,
		Queue:     q,
		Ingestor:  ig,
		host:      h,
	}
}

// RegisterCallback registers a component-class callback, per spec.md §4.2.
func (m *Manager) RegisterCallback(classID string, fn callbacks.Fn) {
	m.Callbacks.RegisterCallback(classID, fn)
}

// RegisterDataFactory registers a data factory for (classID, dataHash),
// per spec.md §4.2.
func (m *Manager) RegisterDataFactory(classID, dataHash string, fn callbacks.DataFactory) {
	m.Callbacks.RegisterDataFactory(classID, dataHash, fn)
}

// LoadScript loads a script tag through the asset registry.
func (m *Manager) LoadScript(tag assets.TagDescriptor) (assets.LoadResult, error) {
	return m.Assets.LoadScript(tag)
}

// LoadStylesheet loads a stylesheet tag through the asset registry.
func (m *Manager) LoadStylesheet(tag assets.TagDescriptor) (*assets.LoadResult, error) {
	return m.Assets.LoadStylesheet(tag)
}

// MarkLoaded records an asset as loaded without inserting an element for
// it, per spec.md §4.1.
func (m *Manager) MarkLoaded(kind assets.Kind, url string) error {
	return m.Assets.MarkLoaded(kind, url)
}

// Stats reports the current activation queue depth and oldest-blocked age.
func (m *Manager) Stats() activation.Stats {
	return m.Queue.Stats()
}

// Start performs the envelope ingestor's startup scan and then begins
// watching for newly inserted envelopes in the background until ctx is
// done.
func (m *Manager) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if err := m.Ingestor.Scan(ctx); err != nil {
		return fmt.Errorf("manager: startup scan failed: %w", err)
	}
	logger.Info("manager: startup scan complete")
	go func() {
		if err := m.Ingestor.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("manager: envelope watch loop exited", "err", err)
		}
	}()
	return nil
}

// Close releases the activation queue's stall reporter goroutine. It does
// not close the underlying host; callers that own the host (e.g. a
// wsbridge connection) are responsible for closing it themselves.
func (m *Manager) Close() {
	m.Queue.Close()
}
