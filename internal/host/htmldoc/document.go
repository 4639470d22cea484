package htmldoc

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/djcmanager/djcmanager/internal/host"
)

// Document is an in-memory host.Host backed by an html.Node tree.
//
// It has no network or filesystem dependency: tests construct one with New
// or NewFromReader and drive it entirely through the host.Host interface
// plus the test-only Inject method, which simulates the server appending a
// fragment to the live page (the thing a real MutationObserver would
// report).
type Document struct {
	mu     sync.Mutex
	root   *html.Node
	head   *html.Node
	body   *html.Node
	logger *slog.Logger

	mutations chan host.Element

	// ScriptLoadLatency, when non-zero, delays the delivery of a script's
	// FireLoad signal by this duration, simulating network latency. Zero
	// (the default) delivers the signal at once from a new goroutine.
	ScriptLoadLatency time.Duration
}

// New returns an empty document (a bare <html><head></head><body></body></html>).
func New(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Document{logger: logger, mutations: make(chan host.Element, 256)}
	d.root, d.head, d.body = emptyTree()
	return d
}

// NewFromReader parses an existing HTML document (e.g. a server-rendered
// page fixture) and returns a Document positioned at that initial state.
func NewFromReader(logger *slog.Logger, r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	d := New(logger)
	d.root = root
	d.head = findFirst(root, atom.Head)
	d.body = findFirst(root, atom.Body)
	if d.head == nil || d.body == nil {
		// Fall back to a synthetic tree if the fixture omitted head/body;
		// html.Parse normally synthesizes both, so this is defensive.
		d.root, d.head, d.body = emptyTree()
	}
	return d, nil
}

func emptyTree() (root, head, body *html.Node) {
	root = &html.Node{Type: html.DocumentNode}
	htmlNode := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	head = &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
	body = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(head)
	htmlNode.AppendChild(body)
	return root, head, body
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// Scan implements host.Host.
func (d *Document) Scan(selector host.Selector) []host.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []host.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			el := wrap(n)
			if selector.Matches(n.Data, el) {
				out = append(out, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// Mutations implements host.Host.
func (d *Document) Mutations() <-chan host.Element {
	return d.mutations
}

// CreateElement implements host.Host.
func (d *Document) CreateElement(tag string, attrs map[string]any, content string) host.Element {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	el := wrap(n)
	for k, v := range attrs {
		el.SetAttr(k, v)
	}
	if content != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	}
	return el
}

// AppendHead implements host.Host.
func (d *Document) AppendHead(el host.Element) {
	d.appendTo(d.head, el)
}

// AppendBody implements host.Host.
func (d *Document) AppendBody(el host.Element) {
	d.appendTo(d.body, el)
}

func (d *Document) appendTo(parent *html.Node, el host.Element) {
	e, ok := el.(*element)
	if !ok {
		return
	}
	d.mu.Lock()
	parent.AppendChild(e.node)
	d.mu.Unlock()
	d.emit(el)
}

func (d *Document) emit(el host.Element) {
	select {
	case d.mutations <- el:
	default:
		d.logger.Warn("htmldoc: mutation channel full, dropping notification")
	}
}

// FireLoad implements host.Host. Scripts with a src resolve after
// ScriptLoadLatency; everything else resolves immediately.
func (d *Document) FireLoad(el host.Element) <-chan error {
	ch := make(chan error, 1)
	deliver := func() { ch <- nil }
	delayed := false
	if e, ok := el.(*element); ok && e.node.Data == "script" {
		_, delayed = e.Attr("src")
	}
	if delayed && d.ScriptLoadLatency > 0 {
		time.AfterFunc(d.ScriptLoadLatency, deliver)
	} else {
		go deliver()
	}
	return ch
}

// Console implements host.Host.
func (d *Document) Console() *slog.Logger {
	return d.logger
}

// Inject parses fragmentHTML as a body fragment, appends every resulting
// top-level node to <body>, and notifies Mutations for every element in the
// fragment (in document order), simulating the server appending a chunk of
// HTML produced by an AJAX response.
func (d *Document) Inject(fragmentHTML string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragmentHTML), d.body)
	if err != nil {
		return err
	}
	d.mu.Lock()
	for _, n := range nodes {
		d.body.AppendChild(n)
	}
	d.mu.Unlock()

	for _, n := range nodes {
		d.emitTree(n)
	}
	return nil
}

func (d *Document) emitTree(n *html.Node) {
	if n.Type == html.ElementNode {
		d.emit(wrap(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.emitTree(c)
	}
}
