// File: services/surface/document.go
package surface

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page the catalog renders into.
// It is not safe for concurrent use; the catalog store serialises access.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("surface: failed to parse page: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// Load parses the page template at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("surface: failed to open page template: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// ReplaceChildren drops every child of the element with the given id and
// appends nodes in order. It reports false when the element is missing.
func (d *Document) ReplaceChildren(id string, nodes []*html.Node) bool {
	container := d.ElementByID(id)
	if container == nil {
		return false
	}
	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		container.AppendChild(n)
	}
	return true
}

// Links returns every <a> element whose href contains fragment.
func (d *Document) Links(fragment string) []*html.Node {
	var links []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.A && strings.Contains(attr(n, "href"), fragment) {
			links = append(links, n)
		}
		return true
	})
	return links
}

// RewriteLinks sets href on every link matched by fragment and returns how
// many were rewritten.
func (d *Document) RewriteLinks(fragment, href string) int {
	links := d.Links(fragment)
	for _, n := range links {
		setAttr(n, "href", href)
	}
	return len(links)
}

// InnerHTML serialises the children of the element with the given id.
func (d *Document) InnerHTML(id string) (string, bool) {
	n := d.ElementByID(id)
	if n == nil {
		return "", false
	}
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", false
		}
	}
	return buf.String(), true
}

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// walk visits nodes depth-first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
