// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

// Package headless is an in-memory implementation of the dom interfaces. Nodes
// are golang.org/x/net/html nodes and selectors are compiled with cascadia, so
// views can be built, wired and exercised without a browser.
package headless

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-humble/view/v2/dom"
)

// Document owns the listener table for every element it creates. Elements
// from different documents must not be mixed.
//
// A Document is not safe for concurrent use.
type Document struct {
	listeners map[*html.Node]map[string][]*listener
	selectors map[string]cascadia.Selector
}

type listener struct {
	fn      func(dom.Event)
	removed bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		listeners: map[*html.Node]map[string][]*listener{},
		selectors: map[string]cascadia.Selector{},
	}
}

// CreateElement satisfies dom.Document. The element is detached.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// Parse materializes markup into a detached element. Markup with exactly one
// top-level element yields that element; anything else is wrapped in a div.
func (d *Document) Parse(markup string) (dom.Element, error) {
	nodes, err := parseFragment(markup, "div")
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 && nodes[0].Type == html.ElementNode {
		return d.wrap(nodes[0]), nil
	}
	wrapper := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return d.wrap(wrapper), nil
}

func (d *Document) wrap(n *html.Node) *Element {
	return &Element{doc: d, node: n}
}

func (d *Document) selector(sel string) (cascadia.Selector, bool) {
	if s, ok := d.selectors[sel]; ok {
		return s, s != nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		d.selectors[sel] = nil
		return nil, false
	}
	d.selectors[sel] = s
	return s, true
}

func (d *Document) addListener(n *html.Node, typ string, fn func(dom.Event)) func() {
	byType := d.listeners[n]
	if byType == nil {
		byType = map[string][]*listener{}
		d.listeners[n] = byType
	}
	l := &listener{fn: fn}
	byType[typ] = append(byType[typ], l)
	return func() {
		d.removeListener(n, typ, l)
	}
}

func (d *Document) removeListener(n *html.Node, typ string, l *listener) {
	l.removed = true
	byType := d.listeners[n]
	list := byType[typ]
	for i, existing := range list {
		if existing == l {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(byType, typ)
	} else {
		byType[typ] = list
	}
	if len(byType) == 0 {
		delete(d.listeners, n)
	}
}

// forget drops the listener tables of n and all of its descendants. It is
// called when SetInnerHTML discards a subtree.
func (d *Document) forget(n *html.Node) {
	if byType, ok := d.listeners[n]; ok {
		for _, list := range byType {
			for _, l := range list {
				l.removed = true
			}
		}
		delete(d.listeners, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func parseFragment(markup string, context string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     context,
		DataAtom: atom.Lookup([]byte(context)),
	}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}
