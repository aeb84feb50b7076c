// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"errors"
	"strconv"
)

// Sentinel errors returned (wrapped in a *BindError) by the binding methods.
var (
	// ErrMissingMethod is returned when an event is bound to a method name that
	// neither the method table nor the owner provides.
	ErrMissingMethod = errors.New("method not found")

	// ErrMethodSignature is returned when a method exists but cannot be used as
	// a handler for the kind of event it is bound to.
	ErrMethodSignature = errors.New("method has an unsupported signature")

	// ErrInvalidSelector is returned when a selector in an events or elements
	// declaration is not valid CSS.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidEventKey is returned when an events key has no event type.
	ErrInvalidEventKey = errors.New("invalid event key")

	// ErrInvalidEmitter is returned when Listen is given a nil emitter or one
	// that cannot be compared for later removal.
	ErrInvalidEmitter = errors.New("emitter must be a non-nil comparable value")

	// ErrTornDown is returned when binding on a view after Teardown.
	ErrTornDown = errors.New("view has been torn down")
)

// BindError describes a failed delegate, listen or element declaration.
type BindError struct {
	// Op is one of "delegate", "listen" or "elements".
	Op string

	// Key is the event key, event name or element name being bound.
	Key string

	// Method is the handler method name, if any.
	Method string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	msg := "view: " + e.Op + " " + strconv.Quote(e.Key)
	if e.Method != "" {
		msg += " -> " + e.Method
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *BindError) Unwrap() error {
	return e.Err
}
