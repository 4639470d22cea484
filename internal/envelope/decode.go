package envelope

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/djcmanager/djcmanager/internal/assets"
)

type wireTag struct {
	Tag     string         `json:"tag"`
	Attrs   map[string]any `json:"attrs"`
	Content string         `json:"content"`
}

type wireJSVar struct {
	ClassID  string `json:"class_id"`
	DataHash string `json:"data_hash"`
	JSON     string `json:"json"`
}

type wireJSCall struct {
	ClassID    string  `json:"class_id"`
	InstanceID string  `json:"instance_id"`
	DataHash   *string `json:"data_hash,omitempty"`
}

type wireEnvelope struct {
	CSSURLsMarkAsLoaded []string     `json:"css_urls_mark_as_loaded"`
	JSURLsMarkAsLoaded  []string     `json:"js_urls_mark_as_loaded"`
	CSSTagsToFetch      []wireTag    `json:"css_tags_to_fetch"`
	JSTagsToFetch       []wireTag    `json:"js_tags_to_fetch"`
	ComponentJSVars     []wireJSVar  `json:"component_js_vars"`
	ComponentJSCalls    []wireJSCall `json:"component_js_calls"`
}

// Decode turns raw (the base64 text content of an envelope element) into
// an Envelope. The whole blob is base64-encoded, rather than just
// individual fields, because the source text sits inside a <script> tag in
// the document and must survive the HTML parser without its JSON braces
// or slashes being mistaken for markup.
func Decode(raw []byte) (*Envelope, error) {
	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("envelope: invalid base64: %w", err)
	}

	var w wireEnvelope
	if err := json.Unmarshal(decoded, &w); err != nil {
		return nil, fmt.Errorf("envelope: invalid json: %w", err)
	}

	env := &Envelope{
		CSSURLsMarkAsLoaded: w.CSSURLsMarkAsLoaded,
		JSURLsMarkAsLoaded:  w.JSURLsMarkAsLoaded,
	}
	for _, t := range w.CSSTagsToFetch {
		env.CSSTagsToFetch = append(env.CSSTagsToFetch, assets.TagDescriptor{Tag: t.Tag, Attrs: t.Attrs, Content: t.Content})
	}
	for _, t := range w.JSTagsToFetch {
		env.JSTagsToFetch = append(env.JSTagsToFetch, assets.TagDescriptor{Tag: t.Tag, Attrs: t.Attrs, Content: t.Content})
	}
	for _, v := range w.ComponentJSVars {
		env.ComponentJSVars = append(env.ComponentJSVars, JSVar{ClassID: v.ClassID, DataHash: v.DataHash, JSONText: v.JSON})
	}
	for _, c := range w.ComponentJSCalls {
		env.ComponentJSCalls = append(env.ComponentJSCalls, JSCall{ClassID: c.ClassID, InstanceID: c.InstanceID, DataHash: c.DataHash})
	}
	return env, nil
}
