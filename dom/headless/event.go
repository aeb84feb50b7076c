// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package headless

import "github.com/go-humble/view/v2/dom"

// event is the headless dom.Event.
type event struct {
	typ       string
	target    *Element
	current   *Element
	stopped   bool
	prevented bool
}

// Type satisfies dom.Event.
func (ev *event) Type() string {
	return ev.typ
}

// Target satisfies dom.Event.
func (ev *event) Target() dom.Element {
	return ev.target
}

// CurrentTarget satisfies dom.Event.
func (ev *event) CurrentTarget() dom.Element {
	if ev.current == nil {
		return nil
	}
	return ev.current
}

// StopPropagation satisfies dom.Event.
func (ev *event) StopPropagation() {
	ev.stopped = true
}

// PropagationStopped satisfies dom.Event.
func (ev *event) PropagationStopped() bool {
	return ev.stopped
}

// PreventDefault satisfies dom.Event.
func (ev *event) PreventDefault() {
	ev.prevented = true
}

// DefaultPrevented satisfies dom.Event.
func (ev *event) DefaultPrevented() bool {
	return ev.prevented
}
