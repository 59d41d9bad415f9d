// Package dom provides small helpers over golang.org/x/net/html nodes: attribute
// access, class matching, inline style properties and tree queries.
//
// The viewer treats a parsed report as its DOM. Nothing here knows about
// reports; it only reads and mutates nodes.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// Render writes the document back out.
func Render(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}

// Attr returns the value of key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// GetAttr returns the value of key, or "" if absent.
func GetAttr(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// HasAttr reports whether key is present.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets key to val, adding the attribute if needed.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes key if present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// SetFlag sets or removes a boolean attribute such as hidden or checked.
func SetFlag(n *html.Node, key string, on bool) {
	if on {
		SetAttr(n, key, "")
		return
	}
	RemoveAttr(n, key)
}

// SetBool writes "true"/"false", the form ARIA state attributes use.
func SetBool(n *html.Node, key string, v bool) {
	if v {
		SetAttr(n, key, "true")
	} else {
		SetAttr(n, key, "false")
	}
}

// SetHidden toggles the hidden attribute.
func SetHidden(n *html.Node, hidden bool) {
	SetFlag(n, "hidden", hidden)
}

// IsHidden reports whether the hidden attribute is present.
func IsHidden(n *html.Node) bool {
	return HasAttr(n, "hidden")
}

// HasClass reports whether the class attribute contains class.
func HasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(GetAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Style returns the value of an inline style property.
func Style(n *html.Node, prop string) (string, bool) {
	for _, decl := range strings.Split(GetAttr(n, "style"), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// SetStyle sets one inline style property and keeps the others in order.
// An empty value removes the property.
func SetStyle(n *html.Node, prop, val string) {
	var decls []string
	found := false
	for _, decl := range strings.Split(GetAttr(n, "style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, _, _ := strings.Cut(decl, ":")
		if strings.TrimSpace(k) == prop {
			found = true
			if val != "" {
				decls = append(decls, prop+": "+val)
			}
			continue
		}
		decls = append(decls, decl)
	}
	if !found && val != "" {
		decls = append(decls, prop+": "+val)
	}
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", strings.Join(decls, "; "))
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// FindAll returns every descendant of n (excluding n) matching pred, in
// document order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, func(m *html.Node) bool {
			if pred(m) {
				out = append(out, m)
			}
			return true
		})
	}
	return out
}

// Find returns the first descendant matching pred, or nil.
func Find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
		Walk(c, func(m *html.Node) bool {
			if found != nil {
				return false
			}
			if pred(m) {
				found = m
				return false
			}
			return true
		})
	}
	return found
}

// ByClass matches element nodes carrying class.
func ByClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return HasClass(n, class) }
}

// ByTag matches element nodes with the given tag name.
func ByTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

// ByID matches the element with the given id.
func ByID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && GetAttr(n, "id") == id
	}
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(m *html.Node) bool {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
		}
		return true
	})
	return strings.TrimSpace(b.String())
}
