package goswipe

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NodeSelector is a quick utility function to get a goquery.Selection from a
// slice of *html.Node.
func NodeSelector(nodes []*html.Node) *goquery.Selection {
	sel := &goquery.Selection{}
	return sel.AddNodes(nodes...)
}

// Element is a bound element of a parsed document.
type Element struct {
	sel  *goquery.Selection
	root *goquery.Selection
	idx  int
}

// NewElement wraps node. root is the document the element lives in and is
// used to resolve ids; it may be nil, in which case ids never resolve.
func NewElement(node *html.Node, root *goquery.Selection) *Element {
	return &Element{sel: NodeSelector([]*html.Node{node}), root: root}
}

// Selection returns the goquery selection holding the element.
func (e *Element) Selection() *goquery.Selection { return e.sel }

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	if len(e.sel.Nodes) == 0 {
		return nil
	}
	return e.sel.Nodes[0]
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	id, _ := e.sel.Attr("id")
	return strings.TrimSpace(id)
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Has reports whether any descendant matches the css selector.
func (e *Element) Has(selector string) bool {
	return e.sel.Find(selector).Length() > 0
}

// Count returns the number of descendants matching the css selector.
func (e *Element) Count(selector string) int {
	return e.sel.Find(selector).Length()
}

// String names the element for diagnostics: tag#id when it has an id, else
// the tag and its position among the document's bound elements.
func (e *Element) String() string {
	n := e.Node()
	if n == nil {
		return "<nil>"
	}
	if id := e.ID(); id != "" {
		return n.Data + "#" + id
	}
	return fmt.Sprintf("%s[%d]", n.Data, e.idx)
}

// Lookup finds the element with the given id in the same document.
func (e *Element) Lookup(id string) (*Element, bool) {
	if e.root == nil || id == "" {
		return nil, false
	}
	match := e.root.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return strings.TrimSpace(v) == id
	})
	if match.Length() == 0 {
		return nil, false
	}
	return &Element{sel: match.First(), root: e.root}, true
}

// Directive collects the element's directive attribute and companions.
//
// The directive attribute is the prefix itself or the prefix followed by
// dot separated modifiers (x-swiper.loop.slides-per-view.3). Companions are
// the prefix, a colon and a name (x-swiper:navigation). It reports false
// when the element carries no directive attribute; companions alone do not
// bind an element.
func (e *Element) Directive(prefix string) (Directive, bool) {
	var (
		d     Directive
		found bool
	)
	n := e.Node()
	if n == nil {
		return d, false
	}

	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}

		switch {
		case key == prefix || strings.HasPrefix(key, prefix+"."):
			if found {
				Logger().Sugar().Warnf("%s: duplicate %s attribute %q ignored", e, prefix, key)
				continue
			}
			found = true
			d.Modifiers = modifiersOf(key, prefix)
			d.Expression = a.Val
		case strings.HasPrefix(key, prefix+":"):
			name := key[len(prefix)+1:]
			// companions take no modifiers
			if i := strings.IndexByte(name, '.'); i >= 0 {
				name = name[:i]
			}
			if d.Companions == nil {
				d.Companions = map[string]string{}
			}
			d.Companions[name] = a.Val
		}
	}
	return d, found
}

// modifiersOf splits an attribute name into its modifiers, skipping empty
// ones.
func modifiersOf(key, prefix string) []string {
	if len(key) <= len(prefix) {
		return nil
	}
	var mods []string
	for _, m := range strings.Split(key[len(prefix)+1:], ".") {
		if m != "" {
			mods = append(mods, m)
		}
	}
	return mods
}

// hasDirective reports whether the element carries the directive attribute
// without parsing it.
func (e *Element) hasDirective(prefix string) bool {
	n := e.Node()
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		if key == prefix || strings.HasPrefix(key, prefix+".") {
			return true
		}
	}
	return false
}
