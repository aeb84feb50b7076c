// Package view is a small library for organizing view-related code written in
// pure go. A View owns a root element, delegates DOM events that happen under
// it to named handler methods, and remembers the subscriptions it makes to
// other emitters so that all of them can be cancelled together.
//
// A view type is described once with a Definition and instantiated with New:
//
//	var formDef = &view.Definition{
//		Template: `<form><input name="title"><button class="save">Save</button></form>`,
//		Elements: map[string]string{"title": "input[name=title]"},
//		Events: view.EventMap{
//			{Key: "click .save", Method: "OnSave"},
//			{Key: "submit", Method: "OnSubmit"},
//		},
//	}
//
//	type Form struct {
//		*view.View
//	}
//
//	func NewForm(model view.Emitter) (*Form, error) {
//		f := &Form{}
//		v, err := view.New(formDef, view.WithOwner(f))
//		if err != nil {
//			return nil, err
//		}
//		f.View = v
//		return f, f.Listen(model, "changed", "OnChanged")
//	}
//
// Method names are resolved once, when they are bound, and a name that cannot
// be resolved is an error. Call Teardown to release every binding a view
// holds.
//
// Compiled with gopherjs (github.com/gopherjs/gopherjs) views work on the real
// DOM through package dom/browser; anywhere else they use the in-memory DOM of
// package dom/headless, which is also what the tests use. View also includes
// helper functions for placing components in the DOM (Append, Replace,
// Remove, Hide, Show, etc.).
package view
