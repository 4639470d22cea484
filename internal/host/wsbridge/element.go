package wsbridge

import (
	"encoding/json"
	"strings"
)

// remoteElement is a lightweight reference to an element living in the real
// browser document, identified by an opaque id. Elements discovered via
// Scan/Mutations carry an id assigned by the relay; elements created via
// CreateElement carry an id this process assigns up front, along with a
// pendingCreate descriptor that AppendHead/AppendBody consumes to tell the
// relay to both create and insert the element in one round trip.
type remoteElement struct {
	id            string
	attrs         map[string]string
	text          string
	bridge        *Bridge
	pendingCreate *wireElement
}

type wireElement struct {
	ID    string            `json:"id"`
	Tag   string            `json:"tag"`
	Attrs map[string]string `json:"attrs"`
	Text  string            `json:"text"`
}

func newRemoteElement(b *Bridge, id string, attrs map[string]string, text string) *remoteElement {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &remoteElement{id: id, attrs: attrs, text: text, bridge: b}
}

func fromWire(b *Bridge, w wireElement) *remoteElement {
	return newRemoteElement(b, w.ID, w.Attrs, w.Text)
}

func (e *remoteElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[strings.ToLower(name)]
	return v, ok
}

// SetAttr updates the local attribute cache and, if the element has already
// been inserted into the real document, emits a set_attr command so the
// relay applies the same change there. Attributes set before insertion are
// folded into the pendingCreate descriptor instead of triggering a command.
func (e *remoteElement) SetAttr(name string, value any) {
	e.setLocal(name, value)
	if e.pendingCreate == nil {
		e.bridge.emitCommand(cmdSetAttr, e.id, map[string]any{"name": name, "value": value})
	}
}

func (e *remoteElement) setLocal(name string, value any) {
	key := strings.ToLower(name)
	switch v := value.(type) {
	case bool:
		if !v {
			delete(e.attrs, key)
		} else {
			e.attrs[key] = ""
		}
	default:
		e.attrs[key] = jsonString(v)
	}
}

func (e *remoteElement) Text() string {
	return e.text
}

func jsonString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}
