package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/nojs-html/events"
)

// Document owns a node tree and the listeners attached to its nodes.
// Tree mutation is not synchronized; the listener table is.
type Document struct {
	root *html.Node

	mu        sync.Mutex
	listeners map[*html.Node][]*listener
}

type listener struct {
	eventType string
	handler   events.Handler
	opts      events.Options
}

// NewDocument creates an empty <html><head></head><body></body></html> tree.
func NewDocument() *Document {
	doc, err := ParseDocument(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	if err != nil {
		// html.Parse only fails on reader errors.
		panic(err)
	}
	return doc
}

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root, listeners: make(map[*html.Node][]*listener)}, nil
}

// Body returns the <body> element.
func (d *Document) Body() *Node {
	if n := findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	}); n != nil {
		return d.wrap(n)
	}
	return nil
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Node {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// GetElementByID returns the first element whose id attribute equals id,
// or nil.
func (d *Document) GetElementByID(id string) *Node {
	n := findFirst(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) wrap(n *html.Node) *Node {
	return &Node{doc: d, n: n}
}

// Node is an element of a Document. It implements Element.
type Node struct {
	doc *Document
	n   *html.Node
}

var _ Element = (*Node)(nil)

// HTMLNode exposes the underlying parse tree node.
func (n *Node) HTMLNode() *html.Node { return n.n }

// Tag returns the lower-case element name.
func (n *Node) Tag() string { return n.n.Data }

// Attr returns the value of the attribute key.
func (n *Node) Attr(key string) (string, bool) { return attr(n.n, key) }

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(key, val string) {
	for i := range n.n.Attr {
		if n.n.Attr[i].Key == key {
			n.n.Attr[i].Val = val
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: val})
}

// AppendChild moves child under n.
func (n *Node) AppendChild(child *Node) {
	if child.n.Parent != nil {
		child.n.Parent.RemoveChild(child.n)
	}
	n.n.AppendChild(child.n)
}

// SetInnerHTML parses markup in the context of n and replaces its children.
// Listeners attached to the removed subtree are dropped.
func (n *Node) SetInnerHTML(markup string) error {
	if n == nil || n.n == nil {
		return ErrNilNode
	}
	if n.n.Type != html.ElementNode {
		return fmt.Errorf("dom: set inner html on non-element node %q", n.n.Data)
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n.n)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}

	n.doc.mu.Lock()
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *html.Node) { delete(n.doc.listeners, d) })
	}
	n.doc.mu.Unlock()

	for c := n.n.FirstChild; c != nil; c = n.n.FirstChild {
		n.n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.n.AppendChild(c)
	}
	return nil
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	var b strings.Builder
	walk(n.n, func(d *html.Node) {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	})
	return b.String()
}

// Comments implements Element.
func (n *Node) Comments() []string {
	if n == nil || n.n == nil {
		return nil
	}
	var out []string
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *html.Node) {
			if d.Type == html.CommentNode {
				out = append(out, strings.TrimSpace(d.Data))
			}
		})
	}
	return out
}

// QuerySelectorAttr implements Element. Attribute names are matched
// case-insensitively, as the parser lower-cases them.
func (n *Node) QuerySelectorAttr(key string) (Element, bool) {
	found := n.queryAttr(key)
	if found == nil {
		return nil, false
	}
	return found, true
}

func (n *Node) queryAttr(key string) *Node {
	if n == nil || n.n == nil {
		return nil
	}
	key = strings.ToLower(key)
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, func(d *html.Node) bool {
			_, ok := attr(d, key)
			return ok && d.Type == html.ElementNode
		}); found != nil {
			return n.doc.wrap(found)
		}
	}
	return nil
}

// QueryAll returns every descendant element named tag.
func (n *Node) QueryAll(tag string) []*Node {
	var out []*Node
	tag = strings.ToLower(tag)
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *html.Node) {
			if d.Type == html.ElementNode && d.Data == tag {
				out = append(out, n.doc.wrap(d))
			}
		})
	}
	return out
}

// AddEventListener implements Element.
func (n *Node) AddEventListener(eventType string, h events.Handler, opts events.Options) {
	if n == nil || n.n == nil || h == nil {
		return
	}
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	n.doc.listeners[n.n] = append(n.doc.listeners[n.n], &listener{eventType: eventType, handler: h, opts: opts})
}

// ListenerCount returns the number of listeners on n for eventType, or for
// all types when eventType is empty.
func (n *Node) ListenerCount(eventType string) int {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	count := 0
	for _, l := range n.doc.listeners[n.n] {
		if eventType == "" || l.eventType == eventType {
			count++
		}
	}
	return count
}

// CountListeners returns the number of listeners attached to n and its
// descendants.
func CountListeners(n *Node) int {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	count := 0
	walk(n.n, func(d *html.Node) { count += len(n.doc.listeners[d]) })
	return count
}

// Dispatch delivers ev to n and then to its ancestors until a handler stops
// propagation. Once listeners are removed before they run. It returns the
// number of handlers invoked.
func (n *Node) Dispatch(ev *events.Event) int {
	if ev.Target == nil {
		ev.Target = n
	}
	invoked := 0
	for cur := n.n; cur != nil; cur = cur.Parent {
		for _, l := range n.doc.take(cur, ev.Type) {
			l.handler.HandleEvent(ev)
			invoked++
		}
		if ev.Stopped() {
			break
		}
	}
	return invoked
}

// take returns the listeners for eventType on node and drops Once listeners.
func (d *Document) take(node *html.Node, eventType string) []*listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched, kept []*listener
	for _, l := range d.listeners[node] {
		if l.eventType == eventType {
			matched = append(matched, l)
			if l.opts.Once {
				continue
			}
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		delete(d.listeners, node)
	} else {
		d.listeners[node] = kept
	}
	return matched
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}
