// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"log/slog"

	"github.com/go-humble/view/v2/dom"
)

// Option configures a view created by New.
type Option func(*options)

type options struct {
	el        dom.Element
	container dom.Element
	doc       dom.Document
	owner     any
	methods   Methods
	logger    *slog.Logger
	id        string
}

func defaultOptions() options {
	return options{
		doc:    document,
		logger: slog.Default(),
	}
}

// WithElement adopts el as the root element instead of creating one.
func WithElement(el dom.Element) Option {
	return func(o *options) {
		o.el = el
	}
}

// WithContainer attaches the root element to container once the view is
// constructed.
func WithContainer(container dom.Element) Option {
	return func(o *options) {
		o.container = container
	}
}

// WithDocument sets the document used to create the root element. The default
// is the browser document when compiled with gopherjs and a shared headless
// document otherwise.
func WithDocument(doc dom.Document) Option {
	return func(o *options) {
		if doc != nil {
			o.doc = doc
		}
	}
}

// WithOwner resolves method names that are not in the method table against the
// exported methods of owner, typically the struct that embeds the *View.
func WithOwner(owner any) Option {
	return func(o *options) {
		o.owner = owner
	}
}

// WithMethods sets an explicit method table. Entries take precedence over the
// owner's methods.
func WithMethods(methods Methods) Option {
	return func(o *options) {
		o.methods = methods
	}
}

// WithLogger sets the logger. Binding activity is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithID overrides the generated view id.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
