// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

//go:build js

// Package browser implements the dom interfaces on top of the real DOM for
// code compiled with gopherjs.
package browser

import (
	"strings"

	"github.com/gopherjs/gopherjs/js"
	jsdom "honnef.co/go/js/dom"

	"github.com/go-humble/view/v2/dom"
)

// Document wraps the window's document.
type Document struct {
	doc jsdom.Document
}

// NewDocument returns the document of the current window.
func NewDocument() *Document {
	return &Document{doc: jsdom.GetWindow().Document()}
}

// CreateElement satisfies dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return Wrap(d.doc.CreateElement(tag))
}

// Element wraps a honnef.co/go/js/dom element.
type Element struct {
	el jsdom.Element
}

var _ dom.Element = (*Element)(nil)

// Wrap returns el as a dom.Element, or nil if el is nil.
func Wrap(el jsdom.Element) dom.Element {
	if el == nil {
		return nil
	}
	return &Element{el: el}
}

// Underlying returns the wrapped element.
func (e *Element) Underlying() jsdom.Element {
	return e.el
}

// TagName satisfies dom.Element.
func (e *Element) TagName() string {
	return strings.ToLower(e.el.TagName())
}

// ParentElement satisfies dom.Element.
func (e *Element) ParentElement() dom.Element {
	return Wrap(e.el.ParentElement())
}

// Matches satisfies dom.Element.
func (e *Element) Matches(selector string) (matched bool) {
	// matches throws a SyntaxError on invalid selectors.
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return e.el.Matches(selector)
}

// QuerySelector satisfies dom.Element.
func (e *Element) QuerySelector(selector string) dom.Element {
	return Wrap(e.el.QuerySelector(selector))
}

// QuerySelectorAll satisfies dom.Element.
func (e *Element) QuerySelectorAll(selector string) []dom.Element {
	found := e.el.QuerySelectorAll(selector)
	elements := make([]dom.Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, Wrap(el))
	}
	return elements
}

// AppendChild satisfies dom.Element.
func (e *Element) AppendChild(child dom.Element) {
	e.el.AppendChild(unwrap(child))
}

// InsertBefore satisfies dom.Element.
func (e *Element) InsertBefore(child dom.Element, before dom.Element) {
	if before == nil {
		e.el.AppendChild(unwrap(child))
		return
	}
	e.el.InsertBefore(unwrap(child), unwrap(before))
}

// ReplaceChild satisfies dom.Element.
func (e *Element) ReplaceChild(newChild dom.Element, oldChild dom.Element) {
	e.el.ReplaceChild(unwrap(newChild), unwrap(oldChild))
}

// RemoveChild satisfies dom.Element.
func (e *Element) RemoveChild(child dom.Element) {
	e.el.RemoveChild(unwrap(child))
}

// InnerHTML satisfies dom.Element.
func (e *Element) InnerHTML() string {
	return e.el.InnerHTML()
}

// SetInnerHTML satisfies dom.Element.
func (e *Element) SetInnerHTML(markup string) {
	e.el.SetInnerHTML(markup)
}

// GetAttribute satisfies dom.Element.
func (e *Element) GetAttribute(name string) string {
	return e.el.GetAttribute(name)
}

// SetAttribute satisfies dom.Element.
func (e *Element) SetAttribute(name string, value string) {
	e.el.SetAttribute(name, value)
}

// HasAttribute satisfies dom.Element.
func (e *Element) HasAttribute(name string) bool {
	return e.el.HasAttribute(name)
}

// AddEventListener satisfies dom.Element.
func (e *Element) AddEventListener(typ string, fn func(dom.Event)) func() {
	jsListener := e.el.AddEventListener(typ, false, func(ev jsdom.Event) {
		fn(&Event{ev: ev})
	})
	return func() {
		e.el.RemoveEventListener(typ, false, jsListener)
	}
}

// Dispatch satisfies dom.Element.
func (e *Element) Dispatch(typ string) dom.Event {
	ev := jsdom.CreateEvent(typ, jsdom.EventOptions{Bubbles: true, Cancelable: true})
	e.el.DispatchEvent(ev)
	return &Event{ev: ev}
}

// IsSameNode satisfies dom.Element.
func (e *Element) IsSameNode(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o != nil && e.el.Underlying() == o.el.Underlying()
}

func unwrap(el dom.Element) jsdom.Node {
	return el.(*Element).el
}

// Event wraps a honnef.co/go/js/dom event.
type Event struct {
	ev      jsdom.Event
	stopped bool
}

// Underlying returns the wrapped event.
func (ev *Event) Underlying() jsdom.Event {
	return ev.ev
}

// Type satisfies dom.Event.
func (ev *Event) Type() string {
	return ev.ev.Type()
}

// Target satisfies dom.Event.
func (ev *Event) Target() dom.Element {
	return Wrap(ev.ev.Target())
}

// CurrentTarget satisfies dom.Event.
func (ev *Event) CurrentTarget() dom.Element {
	return Wrap(ev.ev.CurrentTarget())
}

// StopPropagation satisfies dom.Event.
func (ev *Event) StopPropagation() {
	ev.stopped = true
	ev.ev.StopPropagation()
}

// PropagationStopped satisfies dom.Event.
func (ev *Event) PropagationStopped() bool {
	return ev.stopped || cancelBubble(ev.ev.Underlying())
}

// PreventDefault satisfies dom.Event.
func (ev *Event) PreventDefault() {
	ev.ev.PreventDefault()
}

// DefaultPrevented satisfies dom.Event.
func (ev *Event) DefaultPrevented() bool {
	return ev.ev.DefaultPrevented()
}

func cancelBubble(o *js.Object) bool {
	v := o.Get("cancelBubble")
	return v != js.Undefined && v.Bool()
}
