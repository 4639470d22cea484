package wsbridge

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/djcmanager/djcmanager/internal/host"
)

const (
	eventConnect      = "connect"
	eventConnectError = "connect_error"
	eventScanRequest  = "dom:scan"
	eventScanResult   = "dom:scan:result"
	eventMutation     = "dom:mutation"
	eventCommand      = "dom:command"
	eventLoadResult   = "dom:load:result"

	cmdCreate     = "create"
	cmdAppendHead = "append_head"
	cmdAppendBody = "append_body"
	cmdSetAttr    = "set_attr"
)

// Config configures a Bridge's connection to the relay.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Bridge is a host.Host implementation backed by a live socket.io
// connection to a browser relay. Construct with Dial.
type Bridge struct {
	io     *socket.Socket
	logger *slog.Logger

	mutations chan host.Element

	pendingScans sync.Map // map[string]chan []wireElement
	pendingLoads sync.Map // map[string]chan error
	seq          atomic.Uint64
}

// Dial connects to the relay named by cfg.URL and returns a ready Bridge.
// It blocks until the socket.io "connect" event fires, cfg.ConnectTimeout
// elapses (default 15s), or ctx is cancelled.
func Dial(ctx context.Context, logger *slog.Logger, cfg Config) (*Bridge, error) {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("wsbridge: invalid relay URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("wsbridge: skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	b := &Bridge{io: io, logger: logger, mutations: make(chan host.Element, 256)}
	b.installListeners()

	connectCh := make(chan error, 1)
	io.Once(types.EventName(eventConnect), func(...any) {
		connectCh <- nil
	})
	io.Once(types.EventName(eventConnectError), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				connectCh <- err
				return
			}
		}
		connectCh <- fmt.Errorf("wsbridge: connect_error")
	})

	io.Connect()

	select {
	case err := <-connectCh:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("wsbridge: connection failed: %w", err)
		}
		logger.Info("wsbridge: connected", "sid", io.Id())
		return b, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, ctx.Err()
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("wsbridge: timed out after %s waiting to connect", timeout)
	}
}

func (b *Bridge) installListeners() {
	b.io.On(types.EventName(eventMutation), func(args ...any) {
		if len(args) == 0 {
			return
		}
		var w wireElement
		if err := decodeArg(args[0], &w); err != nil {
			b.logger.Warn("wsbridge: malformed mutation payload", "error", err)
			return
		}
		select {
		case b.mutations <- fromWire(b, w):
		default:
			b.logger.Warn("wsbridge: mutation channel full, dropping notification")
		}
	})

	b.io.On(types.EventName(eventScanResult), func(args ...any) {
		if len(args) < 2 {
			return
		}
		id, _ := args[0].(string)
		ch, ok := b.pendingScans.LoadAndDelete(id)
		if !ok {
			return
		}
		var results []wireElement
		_ = decodeArg(args[1], &results)
		ch.(chan []wireElement) <- results
	})

	b.io.On(types.EventName(eventLoadResult), func(args ...any) {
		if len(args) < 2 {
			return
		}
		id, _ := args[0].(string)
		ch, ok := b.pendingLoads.LoadAndDelete(id)
		if !ok {
			return
		}
		if msg, _ := args[1].(string); msg != "" {
			ch.(chan error) <- fmt.Errorf("wsbridge: script load failed: %s", msg)
			return
		}
		ch.(chan error) <- nil
	})
}

func decodeArg(raw any, out any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (b *Bridge) nextID() string {
	return fmt.Sprintf("djc-%d", b.seq.Add(1))
}

func (b *Bridge) emitCommand(kind, targetID string, payload map[string]any) {
	msg := map[string]any{"kind": kind, "targetId": targetID}
	for k, v := range payload {
		msg[k] = v
	}
	b.io.Emit(eventCommand, msg)
}

// Scan implements host.Host by asking the relay for every element matching
// selector and waiting (up to 5s) for the reply.
func (b *Bridge) Scan(selector host.Selector) []host.Element {
	id := b.nextID()
	ch := make(chan []wireElement, 1)
	b.pendingScans.Store(id, ch)
	defer b.pendingScans.Delete(id)

	b.io.Emit(eventScanRequest, map[string]any{
		"id":   id,
		"tag":  selector.Tag,
		"attr": selector.Attr,
	})

	select {
	case results := <-ch:
		out := make([]host.Element, 0, len(results))
		for _, w := range results {
			out = append(out, fromWire(b, w))
		}
		return out
	case <-time.After(5 * time.Second):
		b.logger.Warn("wsbridge: scan timed out", "tag", selector.Tag, "attr", selector.Attr)
		return nil
	}
}

// Mutations implements host.Host.
func (b *Bridge) Mutations() <-chan host.Element {
	return b.mutations
}

// CreateElement implements host.Host. The element is not inserted (and the
// relay is not told about it) until AppendHead or AppendBody is called.
func (b *Bridge) CreateElement(tag string, attrs map[string]any, content string) host.Element {
	id := b.nextID()
	el := newRemoteElement(b, id, nil, content)
	for k, v := range attrs {
		el.setLocal(k, v)
	}
	el.pendingCreate = &wireElement{ID: id, Tag: tag, Text: content}
	return el
}

// AppendHead implements host.Host.
func (b *Bridge) AppendHead(el host.Element) { b.insert(el, cmdAppendHead) }

// AppendBody implements host.Host.
func (b *Bridge) AppendBody(el host.Element) { b.insert(el, cmdAppendBody) }

func (b *Bridge) insert(el host.Element, where string) {
	re, ok := el.(*remoteElement)
	if !ok {
		return
	}
	if re.pendingCreate != nil {
		re.pendingCreate.Attrs = re.attrs
		b.io.Emit(eventCommand, map[string]any{
			"kind":    cmdCreate,
			"element": re.pendingCreate,
			"where":   where,
		})
		re.pendingCreate = nil
		return
	}
	b.emitCommand(where, re.id, nil)
}

// FireLoad implements host.Host by asking the relay to report when el's
// load (or error) event fires.
func (b *Bridge) FireLoad(el host.Element) <-chan error {
	ch := make(chan error, 1)
	re, ok := el.(*remoteElement)
	if !ok {
		ch <- fmt.Errorf("wsbridge: FireLoad called with a non-bridge element")
		return ch
	}
	b.pendingLoads.Store(re.id, ch)
	b.emitCommand("await_load", re.id, nil)
	return ch
}

// Console implements host.Host.
func (b *Bridge) Console() *slog.Logger {
	return b.logger
}

// Close disconnects from the relay.
func (b *Bridge) Close() {
	b.io.Disconnect()
}
