// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-humble/view/v2/dom"
)

// EventBinding pairs an event key with a handler method name.
type EventBinding struct {
	// Key is "eventType" or "eventType selector" for delegated DOM events, or an
	// event name for emitter events.
	Key string

	// Method is the handler name, resolved through the view's method table.
	Method string
}

// EventMap is an ordered list of event bindings. Order only affects the order
// in which handlers bound to the same element or event run.
type EventMap []EventBinding

// Clone returns a copy of m that shares no storage with it.
func (m EventMap) Clone() EventMap {
	if m == nil {
		return nil
	}
	return append(EventMap(nil), m...)
}

// ParseEventKey splits a delegate key of the form "eventType selector" into
// its event type and selector. The selector is empty when the key names only
// an event type.
func ParseEventKey(key string) (eventType string, selector string, err error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", ErrInvalidEventKey
	}
	i := strings.IndexFunc(key, unicode.IsSpace)
	if i < 0 {
		return key, "", nil
	}
	return key[:i], strings.TrimSpace(key[i:]), nil
}

type delegateEntry struct {
	selector string
	method   string
	fn       DelegateFunc
	removed  bool
}

// delegateGroup holds every entry for one event type and the single native
// listener attached to the root for it.
type delegateGroup struct {
	entries []*delegateEntry
	detach  func()
}

// delegator dispatches DOM events that reach root to the entries whose
// selectors match the target or one of its ancestors.
type delegator struct {
	root   dom.Element
	groups map[string]*delegateGroup
	order  []string
}

func newDelegator(root dom.Element) *delegator {
	return &delegator{
		root:   root,
		groups: map[string]*delegateGroup{},
	}
}

// bind adds an entry and reports whether it was new. Binding an identical
// (eventType, selector, method) triple again is a no-op.
func (d *delegator) bind(eventType, selector, method string, fn DelegateFunc) bool {
	g := d.groups[eventType]
	if g == nil {
		g = &delegateGroup{}
		g.detach = d.root.AddEventListener(eventType, func(ev dom.Event) {
			d.dispatch(g, ev)
		})
		d.groups[eventType] = g
		d.order = append(d.order, eventType)
	}
	for _, e := range g.entries {
		if e.selector == selector && e.method == method {
			return false
		}
	}
	g.entries = append(g.entries, &delegateEntry{
		selector: selector,
		method:   method,
		fn:       fn,
	})
	return true
}

// unbind removes every entry for eventType bound to method and returns how
// many were removed.
func (d *delegator) unbind(eventType, method string) int {
	return d.removeWhere(eventType, func(e *delegateEntry) bool {
		return e.method == method
	})
}

// unbindSelector removes every entry for eventType bound to selector.
func (d *delegator) unbindSelector(eventType, selector string) int {
	return d.removeWhere(eventType, func(e *delegateEntry) bool {
		return e.selector == selector
	})
}

// unbindAll removes every entry for eventType.
func (d *delegator) unbindAll(eventType string) int {
	return d.removeWhere(eventType, func(*delegateEntry) bool {
		return true
	})
}

// reset removes every entry and detaches every native listener.
func (d *delegator) reset() int {
	n := 0
	for _, eventType := range append([]string(nil), d.order...) {
		n += d.unbindAll(eventType)
	}
	return n
}

// count returns the number of entries bound for eventType.
func (d *delegator) count(eventType string) int {
	if g := d.groups[eventType]; g != nil {
		return len(g.entries)
	}
	return 0
}

func (d *delegator) removeWhere(eventType string, match func(*delegateEntry) bool) int {
	g := d.groups[eventType]
	if g == nil {
		return 0
	}
	kept := make([]*delegateEntry, 0, len(g.entries))
	removed := 0
	for _, e := range g.entries {
		if match(e) {
			e.removed = true
			removed++
			continue
		}
		kept = append(kept, e)
	}
	g.entries = kept
	if len(kept) == 0 {
		g.detach()
		delete(d.groups, eventType)
		for i, t := range d.order {
			if t == eventType {
				d.order = append(d.order[:i:i], d.order[i+1:]...)
				break
			}
		}
	}
	return removed
}

// dispatch walks from the event target up to and including the root. Each
// entry fires at most once, with the closest element its selector matches.
// Entries matching the same element fire in the order they were bound.
func (d *delegator) dispatch(g *delegateGroup, ev dom.Event) {
	entries := append([]*delegateEntry(nil), g.entries...)
	fired := make([]bool, len(entries))
	pending := len(entries)
	for el := ev.Target(); el != nil && pending > 0; el = el.ParentElement() {
		atRoot := el.IsSameNode(d.root)
		for i, e := range entries {
			if fired[i] || e.removed || !matches(el, e.selector, atRoot) {
				continue
			}
			fired[i] = true
			pending--
			e.fn(ev, el)
		}
		if atRoot || ev.PropagationStopped() {
			return
		}
	}
}

func matches(el dom.Element, selector string, atRoot bool) bool {
	if selector == "" {
		return atRoot
	}
	return el.Matches(selector)
}

// Delegate binds events of eventType whose target is, or is inside, an element
// matched by selector to the named method. An empty selector matches the root
// element only. Selectors are matched when an event fires, so they may name
// elements added later. Binding the same (eventType, selector, method) again
// has no effect.
func (v *View) Delegate(eventType, selector, method string) error {
	fn, err := v.prepareDelegate(eventType, selector, method)
	if err != nil {
		return err
	}
	v.bindDelegate(eventType, selector, method, fn)
	return nil
}

// DelegateAll binds every entry of events, whose keys have the form
// "eventType" or "eventType selector". Every entry is checked before any is
// bound, so on error nothing from events has been bound.
func (v *View) DelegateAll(events EventMap) error {
	type prepared struct {
		eventType, selector, method string
		fn                          DelegateFunc
	}
	batch := make([]prepared, 0, len(events))
	for _, b := range events {
		eventType, selector, err := ParseEventKey(b.Key)
		if err != nil {
			return v.bindFailed("delegate", b.Key, b.Method, err)
		}
		fn, err := v.prepareDelegate(eventType, selector, b.Method)
		if err != nil {
			return err
		}
		batch = append(batch, prepared{eventType, selector, b.Method, fn})
	}
	for _, p := range batch {
		v.bindDelegate(p.eventType, p.selector, p.method, p.fn)
	}
	return nil
}

// Undelegate removes every binding of eventType to method, whatever its
// selector. Removing bindings that do not exist is a no-op.
func (v *View) Undelegate(eventType, method string) {
	if n := v.delegates.unbind(eventType, method); n > 0 {
		v.logger.Debug("undelegate",
			slog.String("event", eventType),
			slog.String("method", method),
			slog.Int("removed", n),
		)
	}
}

// UndelegateSelector removes every binding of eventType to selector, whatever
// its method.
func (v *View) UndelegateSelector(eventType, selector string) {
	if n := v.delegates.unbindSelector(eventType, selector); n > 0 {
		v.logger.Debug("undelegate selector",
			slog.String("event", eventType),
			slog.String("selector", selector),
			slog.Int("removed", n),
		)
	}
}

// UndelegateAll removes every binding of eventType.
func (v *View) UndelegateAll(eventType string) {
	if n := v.delegates.unbindAll(eventType); n > 0 {
		v.logger.Debug("undelegate all",
			slog.String("event", eventType),
			slog.Int("removed", n),
		)
	}
}

// Delegated returns the number of bindings for eventType.
func (v *View) Delegated(eventType string) int {
	return v.delegates.count(eventType)
}

func (v *View) prepareDelegate(eventType, selector, method string) (DelegateFunc, error) {
	key := strings.TrimSpace(eventType + " " + selector)
	if v.tornDown {
		return nil, v.bindFailed("delegate", key, method, ErrTornDown)
	}
	if eventType == "" || strings.ContainsAny(eventType, " \t\n") {
		return nil, v.bindFailed("delegate", key, method, ErrInvalidEventKey)
	}
	if err := dom.ValidateSelector(selector); err != nil {
		return nil, v.bindFailed("delegate", key, method, fmt.Errorf("%w: %w", ErrInvalidSelector, err))
	}
	fn, err := v.methods.delegateFunc(method)
	if err != nil {
		return nil, v.bindFailed("delegate", key, method, err)
	}
	return fn, nil
}

func (v *View) bindDelegate(eventType, selector, method string, fn DelegateFunc) {
	if v.delegates.bind(eventType, selector, method, fn) {
		v.logger.Debug("delegate",
			slog.String("event", eventType),
			slog.String("selector", selector),
			slog.String("method", method),
		)
	}
}

func (v *View) bindFailed(op, key, method string, err error) error {
	bindErr := &BindError{Op: op, Key: key, Method: method, Err: err}
	v.logger.Warn("bind failed", slog.Any("error", bindErr))
	return bindErr
}
