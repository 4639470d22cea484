package assets

// TagDescriptor is the format-agnostic representation of the wire format's
// tag-descriptor object: {tag, attrs, content}. Boolean true in Attrs
// renders as a valueless attribute, false omits the attribute, and any
// other value renders via its string form — see host.Element.SetAttr,
// which implements exactly this rule.
type TagDescriptor struct {
	Tag     string
	Attrs   map[string]any
	Content string
}

// urlFromAttrs returns the descriptor's URL attribute value for kind and
// whether it was present at all (a missing URL attribute is the "inline
// only" edge case from spec.md §4.1).
func (t TagDescriptor) urlFromAttrs(k Kind) (string, bool) {
	v, ok := t.Attrs[k.urlAttr()]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
