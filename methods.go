// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"reflect"

	"github.com/go-humble/view/v2/dom"
)

// Methods maps handler names used in events declarations to functions.
//
// Delegated DOM handlers may have one of the signatures
//
//	func(ev dom.Event, matched dom.Element)
//	func(ev dom.Event)
//	func()
//
// and listener handlers one of
//
//	func(args ...any)
//	func(arg any)
//	func()
type Methods map[string]any

// DelegateFunc handles a delegated DOM event. matched is the element the
// selector matched, which is the root element for an empty selector.
type DelegateFunc func(ev dom.Event, matched dom.Element)

// ListenerFunc handles an event emitted by another object.
type ListenerFunc func(args ...any)

// methodTable resolves names once, at bind time.
type methodTable struct {
	methods Methods
	owner   reflect.Value
}

func newMethodTable(methods Methods, owner any) methodTable {
	t := methodTable{methods: methods}
	if owner != nil {
		t.owner = reflect.ValueOf(owner)
	}
	return t
}

func (t methodTable) lookup(name string) (any, error) {
	if fn, ok := t.methods[name]; ok && fn != nil {
		return fn, nil
	}
	if t.owner.IsValid() && name != "" {
		if m := t.owner.MethodByName(name); m.IsValid() {
			return m.Interface(), nil
		}
	}
	return nil, ErrMissingMethod
}

func (t methodTable) delegateFunc(name string) (DelegateFunc, error) {
	fn, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	switch f := fn.(type) {
	case DelegateFunc:
		return f, nil
	case func(dom.Event, dom.Element):
		return f, nil
	case func(dom.Event):
		return func(ev dom.Event, _ dom.Element) { f(ev) }, nil
	case func():
		return func(dom.Event, dom.Element) { f() }, nil
	}
	return nil, ErrMethodSignature
}

func (t methodTable) listenerFunc(name string) (ListenerFunc, error) {
	fn, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	switch f := fn.(type) {
	case ListenerFunc:
		return f, nil
	case func(...any):
		return f, nil
	case func(any):
		return func(args ...any) {
			var first any
			if len(args) > 0 {
				first = args[0]
			}
			f(first)
		}, nil
	case func():
		return func(...any) { f() }, nil
	}
	return nil, ErrMethodSignature
}
