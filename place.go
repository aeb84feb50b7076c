// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"strings"

	"github.com/go-humble/view/v2/dom"
)

// Component is anything that renders into a root element. *View satisfies it,
// and so does any struct that embeds a *View.
type Component interface {
	Render() error
	Element() dom.Element
}

// Append appends child to a parent Component. More specifically, it
// appends child.Element() to parent.Element().
func Append(parent Component, child Component) {
	parent.Element().AppendChild(child.Element())
}

// AppendToEl appends child to a parent element.
func AppendToEl(parent dom.Element, child Component) {
	parent.AppendChild(child.Element())
}

// InsertBefore inserts c directly before before. It does nothing if before is
// detached.
func InsertBefore(c Component, before Component) {
	InsertBeforeEl(c, before.Element())
}

// InsertBeforeEl inserts c directly before the element before. It does nothing
// if before is detached.
func InsertBeforeEl(c Component, before dom.Element) {
	if parent := before.ParentElement(); parent != nil {
		parent.InsertBefore(c.Element(), before)
	}
}

// Replace replaces old with new in the DOM. It does nothing if old is
// detached.
func Replace(new Component, old Component) {
	ReplaceEl(new, old.Element())
}

// ReplaceEl replaces the element old with new. It does nothing if old is
// detached.
func ReplaceEl(new Component, old dom.Element) {
	if parent := old.ParentElement(); parent != nil {
		parent.ReplaceChild(new.Element(), old)
	}
}

// Remove removes the component from the DOM entirely. It does not destroy the
// root element of the component, which can be attached again later.
func Remove(c Component) {
	el := c.Element()
	if parent := el.ParentElement(); parent != nil {
		parent.RemoveChild(el)
	}
}

// Hide hides the component by adding the inline style "display:none".
// Hide is safe to use even if you have other attributes and inline styles. It
// has no effect if the component is already hidden.
func Hide(c Component) {
	el := c.Element()
	oldStyles := el.GetAttribute("style")
	newStyles := ""
	switch {
	case oldStyles == "":
		newStyles = "display:none"
	case strings.Contains(oldStyles, "display:none"):
		return
	case strings.HasSuffix(oldStyles, ";"):
		newStyles = oldStyles + "display:none;"
	default:
		newStyles = oldStyles + ";display:none;"
	}
	el.SetAttribute("style", newStyles)
}

// Show shows a previously hidden component by removing the inline style
// "display:none". Show is safe to use even if you have other attributes and
// inline styles. It has no effect if the component is already visible.
func Show(c Component) {
	el := c.Element()
	oldStyles := el.GetAttribute("style")
	// The semicolon form is removed first; if there was none this has no
	// effect and the bare form is removed instead.
	newStyles := strings.Replace(oldStyles, "display:none;", "", 1)
	newStyles = strings.Replace(newStyles, "display:none", "", 1)
	el.SetAttribute("style", newStyles)
}
