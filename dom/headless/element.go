// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package headless

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/go-humble/view/v2/dom"
)

// Element is a headless dom.Element. Several *Element values may wrap the same
// node; use IsSameNode to compare them.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ dom.Element = (*Element)(nil)

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// ListenerCount returns the number of native listeners registered for typ on
// this element.
func (e *Element) ListenerCount(typ string) int {
	return len(e.doc.listeners[e.node][typ])
}

// TagName satisfies dom.Element. Tag names are lower case.
func (e *Element) TagName() string {
	return e.node.Data
}

// ParentElement satisfies dom.Element.
func (e *Element) ParentElement() dom.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Matches satisfies dom.Element. An invalid selector matches nothing.
func (e *Element) Matches(selector string) bool {
	s, ok := e.doc.selector(selector)
	return ok && s.Match(e.node)
}

// QuerySelector satisfies dom.Element.
func (e *Element) QuerySelector(selector string) dom.Element {
	s, ok := e.doc.selector(selector)
	if !ok {
		return nil
	}
	n := cascadia.Query(e.node, s)
	if n == nil {
		return nil
	}
	return e.doc.wrap(n)
}

// QuerySelectorAll satisfies dom.Element.
func (e *Element) QuerySelectorAll(selector string) []dom.Element {
	s, ok := e.doc.selector(selector)
	if !ok {
		return nil
	}
	nodes := cascadia.QueryAll(e.node, s)
	elements := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, e.doc.wrap(n))
	}
	return elements
}

// AppendChild satisfies dom.Element. child is moved if it is attached.
func (e *Element) AppendChild(child dom.Element) {
	c := detach(e.nodeOf(child))
	e.node.AppendChild(c)
}

// InsertBefore satisfies dom.Element.
func (e *Element) InsertBefore(child dom.Element, before dom.Element) {
	if before == nil {
		e.AppendChild(child)
		return
	}
	c := detach(e.nodeOf(child))
	e.node.InsertBefore(c, e.nodeOf(before))
}

// ReplaceChild satisfies dom.Element.
func (e *Element) ReplaceChild(newChild dom.Element, oldChild dom.Element) {
	old := e.nodeOf(oldChild)
	c := detach(e.nodeOf(newChild))
	e.node.InsertBefore(c, old)
	e.node.RemoveChild(old)
}

// RemoveChild satisfies dom.Element.
func (e *Element) RemoveChild(child dom.Element) {
	e.node.RemoveChild(e.nodeOf(child))
}

// InnerHTML satisfies dom.Element. Void elements are written without a
// closing slash, as browsers do.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = render(&b, c)
	}
	return b.String()
}

// SetInnerHTML replaces the children of the element with the parsed markup.
// Listeners registered on the discarded children are dropped.
func (e *Element) SetInnerHTML(markup string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.doc.forget(c)
		e.node.RemoveChild(c)
		c = next
	}
	nodes, err := parseFragment(markup, e.node.Data)
	if err != nil {
		// Parsing from a strings.Reader only fails on reader errors.
		panic(fmt.Sprintf("headless: parse markup: %v", err))
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
}

// GetAttribute satisfies dom.Element.
func (e *Element) GetAttribute(name string) string {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

// SetAttribute satisfies dom.Element.
func (e *Element) SetAttribute(name string, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// HasAttribute satisfies dom.Element.
func (e *Element) HasAttribute(name string) bool {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return true
		}
	}
	return false
}

// AddEventListener satisfies dom.Element.
func (e *Element) AddEventListener(typ string, fn func(dom.Event)) func() {
	return e.doc.addListener(e.node, typ, fn)
}

// Dispatch runs the listeners of the target and then of each ancestor element,
// stopping early if a listener stops propagation. Listeners added during
// dispatch are not called for this event; listeners removed during dispatch
// are not called once removed.
func (e *Element) Dispatch(typ string) dom.Event {
	ev := &event{typ: typ, target: e}
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		list := e.doc.listeners[n][typ]
		if len(list) == 0 {
			continue
		}
		ev.current = e.doc.wrap(n)
		snapshot := make([]*listener, len(list))
		copy(snapshot, list)
		for _, l := range snapshot {
			if l.removed {
				continue
			}
			l.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.current = nil
	return ev
}

// IsSameNode satisfies dom.Element.
func (e *Element) IsSameNode(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o != nil && o.node == e.node
}

// String renders the element and its subtree as markup.
func (e *Element) String() string {
	var b strings.Builder
	_ = render(&b, e.node)
	return b.String()
}

func (e *Element) nodeOf(el dom.Element) *html.Node {
	h, ok := el.(*Element)
	if !ok || h == nil {
		panic(fmt.Sprintf("headless: foreign element %T", el))
	}
	if h.doc != e.doc {
		panic("headless: element belongs to another document")
	}
	return h.node
}

func detach(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}
