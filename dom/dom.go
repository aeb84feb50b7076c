// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

// Package dom describes the part of the DOM that views depend on. Two
// implementations exist: package headless, which keeps a document in memory
// using golang.org/x/net/html and can run anywhere, and package browser (build
// tag js), which wraps honnef.co/go/js/dom for code compiled with gopherjs.
package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// Element is a single DOM element.
type Element interface {
	// TagName returns the lower-case tag name of the element.
	TagName() string
	// ParentElement returns the parent of the element, or nil if the element
	// is detached or is the top of its tree.
	ParentElement() Element
	// Matches reports whether the element is matched by the CSS selector.
	// An invalid selector matches nothing.
	Matches(selector string) bool
	// QuerySelector returns the first descendant matched by selector, or nil.
	QuerySelector(selector string) Element
	// QuerySelectorAll returns every descendant matched by selector in
	// document order.
	QuerySelectorAll(selector string) []Element

	AppendChild(child Element)
	InsertBefore(child Element, before Element)
	ReplaceChild(newChild Element, oldChild Element)
	RemoveChild(child Element)

	InnerHTML() string
	SetInnerHTML(markup string)

	GetAttribute(name string) string
	SetAttribute(name string, value string)
	HasAttribute(name string) bool

	// AddEventListener registers fn for events of type typ in the bubbling
	// phase. The returned function removes the listener and may be called more
	// than once.
	AddEventListener(typ string, fn func(Event)) (remove func())
	// Dispatch fires a bubbling, cancelable event of type typ with the element
	// as its target and returns the event after every listener has run.
	Dispatch(typ string) Event
	// IsSameNode reports whether other refers to the same underlying node.
	IsSameNode(other Element) bool
}

// Event is a DOM event as seen by a listener.
type Event interface {
	Type() string
	Target() Element
	CurrentTarget() Element
	StopPropagation()
	PropagationStopped() bool
	PreventDefault()
	DefaultPrevented() bool
}

// Document creates elements.
type Document interface {
	CreateElement(tag string) Element
}

// ValidateSelector returns an error if selector is not a valid CSS selector
// group. The empty selector is valid and means "the element itself".
func ValidateSelector(selector string) error {
	if selector == "" {
		return nil
	}
	if _, err := cascadia.Compile(selector); err != nil {
		return fmt.Errorf("selector %q: %w", selector, err)
	}
	return nil
}
