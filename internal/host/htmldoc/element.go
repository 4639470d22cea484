package htmldoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// element adapts an *html.Node of type html.ElementNode to host.Element.
type element struct {
	node *html.Node
}

func wrap(n *html.Node) *element {
	return &element{node: n}
}

func (e *element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (e *element) SetAttr(name string, value any) {
	switch v := value.(type) {
	case bool:
		if !v {
			e.removeAttr(name)
			return
		}
		e.setRaw(name, "")
	default:
		e.setRaw(name, fmt.Sprint(v))
	}
}

func (e *element) setRaw(name, val string) {
	for i, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: val})
}

func (e *element) removeAttr(name string) {
	out := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if !strings.EqualFold(a.Key, name) {
			out = append(out, a)
		}
	}
	e.node.Attr = out
}

func (e *element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}
