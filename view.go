// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"

	"github.com/go-humble/view/v2/dom"
	"github.com/go-humble/view/v2/emitter"
)

// Definition is the static declaration shared by every view of one kind. New
// copies what it needs and never modifies a Definition, so one value can be
// shared by all instances.
type Definition struct {
	// Tag is the tag name of the root element created when no element is
	// adopted. The default is "div".
	Tag string

	// Template is markup set as the content of the root element once, at
	// construction.
	Template string

	// Elements maps logical names to CSS selectors resolved once against the
	// root element. A selector that matches nothing resolves to nil.
	Elements map[string]string

	// Events declares delegated DOM events, bound at construction.
	Events EventMap
}

// View owns a root element, delegates DOM events under it to named methods and
// keeps track of its subscriptions to other emitters so they can be cancelled
// together. A View is itself an Emitter.
//
// A View is meant to be used from a single goroutine.
type View struct {
	id        string
	el        dom.Element
	container dom.Element
	elements  map[string]dom.Element
	methods   methodTable
	delegates *delegator
	listeners *registry
	events    *emitter.Emitter
	logger    *slog.Logger
	tornDown  bool
}

// New constructs a view from def. The root element is adopted from
// WithElement or created from the document, the template is materialized into
// it, named elements are resolved and def.Events are delegated. If a container
// was given the root element is attached to it last.
//
// New fails if an events entry names a missing method, has an invalid key or
// selector, or if an elements selector is invalid. Nothing stays bound when
// New fails.
func New(def *Definition, opts ...Option) (*View, error) {
	if def == nil {
		def = &Definition{}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	v := &View{
		id:        o.id,
		el:        o.el,
		methods:   newMethodTable(o.methods, o.owner),
		listeners: &registry{},
		events:    emitter.New(),
		logger:    o.logger.With(slog.String("view_id", o.id)),
	}
	if v.el == nil {
		tag := def.Tag
		if tag == "" {
			tag = "div"
		}
		v.el = o.doc.CreateElement(tag)
	}
	if def.Template != "" {
		v.el.SetInnerHTML(def.Template)
	}

	elements, err := resolveElements(v.el, def.Elements)
	if err != nil {
		v.logger.Warn("resolve elements", slog.Any("error", err))
		return nil, err
	}
	v.elements = elements

	v.delegates = newDelegator(v.el)
	if err := v.DelegateAll(def.Events.Clone()); err != nil {
		return nil, err
	}

	if o.container != nil {
		v.Into(o.container)
	}
	return v, nil
}

func resolveElements(root dom.Element, selectors map[string]string) (map[string]dom.Element, error) {
	elements := make(map[string]dom.Element, len(selectors))
	for name, selector := range selectors {
		if selector == "" {
			return nil, &BindError{Op: "elements", Key: name, Err: ErrInvalidSelector}
		}
		if err := dom.ValidateSelector(selector); err != nil {
			return nil, &BindError{Op: "elements", Key: name, Err: fmt.Errorf("%w: %w", ErrInvalidSelector, err)}
		}
		elements[name] = root.QuerySelector(selector)
	}
	return elements, nil
}

// ID returns the unique id of the view.
func (v *View) ID() string {
	return v.id
}

// Element returns the root element.
func (v *View) Element() dom.Element {
	return v.el
}

// Container returns the element the root was last attached to with Into, or
// nil.
func (v *View) Container() dom.Element {
	return v.container
}

// Named returns the element resolved for name at construction, or nil if the
// selector matched nothing or name was not declared.
func (v *View) Named(name string) dom.Element {
	return v.elements[name]
}

// Elements returns a copy of the resolved named elements.
func (v *View) Elements() map[string]dom.Element {
	return maps.Clone(v.elements)
}

// Render is the extension point for types that embed *View. The base
// implementation does nothing.
func (v *View) Render() error {
	return nil
}

// Into attaches the root element to container and records it.
func (v *View) Into(container dom.Element) {
	if container == nil {
		return
	}
	AppendToEl(container, v)
	v.container = container
}

// TornDown reports whether Teardown has been called.
func (v *View) TornDown() bool {
	return v.tornDown
}

// Teardown removes every delegated event, cancels every subscription the view
// made to other emitters and detaches the root element from its parent.
// Handlers that others registered on the view are theirs to remove, so events
// the view emits after Teardown still reach them. Teardown is idempotent.
func (v *View) Teardown() {
	if v.tornDown {
		return
	}
	delegates := v.delegates.reset()
	listeners := v.listeners.reset()
	Remove(v)
	v.container = nil
	v.tornDown = true
	v.logger.Debug("view torn down",
		slog.Int("delegates", delegates),
		slog.Int("listeners", listeners),
	)
}

// On registers h for event on the view's own emitter.
func (v *View) On(event string, h *emitter.Handler) {
	v.events.On(event, h)
}

// Once registers h for the next event only.
func (v *View) Once(event string, h *emitter.Handler) {
	v.events.Once(event, h)
}

// Off removes h for event from the view's own emitter.
func (v *View) Off(event string, h *emitter.Handler) {
	v.events.Off(event, h)
}

// Emit calls the handlers registered on the view for event.
func (v *View) Emit(event string, args ...any) {
	v.events.Emit(event, args...)
}

// ListenerCount returns the number of handlers registered on the view for
// event.
func (v *View) ListenerCount(event string) int {
	return v.events.ListenerCount(event)
}
