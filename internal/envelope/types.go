package envelope

import "github.com/djcmanager/djcmanager/internal/assets"

// Envelope is the format-agnostic, decoded form of one envelope element's
// contents, per spec.md §6's schema table.
type Envelope struct {
	CSSURLsMarkAsLoaded []string
	JSURLsMarkAsLoaded  []string
	CSSTagsToFetch      []assets.TagDescriptor
	JSTagsToFetch       []assets.TagDescriptor
	ComponentJSVars     []JSVar
	ComponentJSCalls    []JSCall
}

// JSVar names a data factory this envelope registers: the raw JSON text is
// kept verbatim and parsed fresh on every factory invocation, never cached,
// so that two activations sharing a data-hash can never observe a mutation
// made by the other through the same value.
type JSVar struct {
	ClassID  string
	DataHash string
	JSONText string
}

// JSCall names one activation this envelope enqueues. A nil DataHash means
// the activation carries no data object.
type JSCall struct {
	ClassID    string
	InstanceID string
	DataHash   *string
}
