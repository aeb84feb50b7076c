// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view

import (
	"log/slog"
	"reflect"

	"github.com/go-humble/view/v2/emitter"
)

// Emitter is anything a view can listen to. *emitter.Emitter and *View both
// satisfy it. Emitters are compared with ==, so implementations should be
// pointers.
type Emitter interface {
	On(event string, h *emitter.Handler)
	Off(event string, h *emitter.Handler)
	Emit(event string, args ...any)
}

type subscription struct {
	emitter Emitter
	event   string
	method  string
	handler *emitter.Handler
}

// registry records the subscriptions a view has made to other emitters so
// they can be cancelled without the caller keeping the handlers.
type registry struct {
	subs []*subscription
}

func (r *registry) index(em Emitter, event, method string) int {
	for i, s := range r.subs {
		if s.emitter == em && s.event == event && s.method == method {
			return i
		}
	}
	return -1
}

// add subscribes fn to em and reports whether a new subscription was made.
// An identical (emitter, event, method) subscription is not made twice.
func (r *registry) add(em Emitter, event, method string, fn ListenerFunc) bool {
	if r.index(em, event, method) >= 0 {
		return false
	}
	h := emitter.NewHandler(fn)
	em.On(event, h)
	r.subs = append(r.subs, &subscription{
		emitter: em,
		event:   event,
		method:  method,
		handler: h,
	})
	return true
}

func (r *registry) remove(em Emitter, event, method string) bool {
	i := r.index(em, event, method)
	if i < 0 {
		return false
	}
	s := r.subs[i]
	r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
	s.emitter.Off(s.event, s.handler)
	return true
}

// removeWhere cancels every subscription matching match, in subscription
// order, and returns how many were cancelled.
func (r *registry) removeWhere(match func(*subscription) bool) int {
	kept := make([]*subscription, 0, len(r.subs))
	var cancelled []*subscription
	for _, s := range r.subs {
		if match(s) {
			cancelled = append(cancelled, s)
			continue
		}
		kept = append(kept, s)
	}
	r.subs = kept
	for _, s := range cancelled {
		s.emitter.Off(s.event, s.handler)
	}
	return len(cancelled)
}

func (r *registry) removeEmitter(em Emitter) int {
	return r.removeWhere(func(s *subscription) bool {
		return s.emitter == em
	})
}

func (r *registry) removeEvent(em Emitter, event string) int {
	return r.removeWhere(func(s *subscription) bool {
		return s.emitter == em && s.event == event
	})
}

func (r *registry) reset() int {
	return r.removeWhere(func(*subscription) bool {
		return true
	})
}

func (r *registry) size() int {
	return len(r.subs)
}

// validEmitter reports whether em can be subscribed to and later found again.
func validEmitter(em Emitter) bool {
	if em == nil {
		return false
	}
	v := reflect.ValueOf(em)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		if v.IsNil() {
			return false
		}
	}
	return v.Type().Comparable()
}

// Listen subscribes the named method to event on em. The view records the
// subscription so Unlisten, UnlistenEmitter or Teardown can cancel it later.
// Listening to the same (em, event, method) again has no effect.
func (v *View) Listen(em Emitter, event, method string) error {
	fn, err := v.prepareListen(em, event, method)
	if err != nil {
		return err
	}
	v.subscribe(em, event, method, fn)
	return nil
}

// ListenAll subscribes every entry of events, keyed by event name, to em.
// Every entry is checked before any subscription is made.
func (v *View) ListenAll(em Emitter, events EventMap) error {
	fns := make([]ListenerFunc, 0, len(events))
	for _, b := range events {
		fn, err := v.prepareListen(em, b.Key, b.Method)
		if err != nil {
			return err
		}
		fns = append(fns, fn)
	}
	for i, b := range events {
		v.subscribe(em, b.Key, b.Method, fns[i])
	}
	return nil
}

// Unlisten cancels the subscription made by Listen with the same arguments.
// Cancelling a subscription that was never made is a no-op.
func (v *View) Unlisten(em Emitter, event, method string) {
	if v.listeners.remove(em, event, method) {
		v.logger.Debug("unlisten",
			slog.String("event", event),
			slog.String("method", method),
		)
	}
}

// UnlistenAll cancels the subscription of every entry of events on em.
func (v *View) UnlistenAll(em Emitter, events EventMap) {
	for _, b := range events {
		v.Unlisten(em, b.Key, b.Method)
	}
}

// UnlistenEmitter cancels every subscription the view made to em.
func (v *View) UnlistenEmitter(em Emitter) {
	if n := v.listeners.removeEmitter(em); n > 0 {
		v.logger.Debug("unlisten emitter", slog.Int("removed", n))
	}
}

// UnlistenEvent cancels every subscription the view made to event on em.
func (v *View) UnlistenEvent(em Emitter, event string) {
	if n := v.listeners.removeEvent(em, event); n > 0 {
		v.logger.Debug("unlisten event",
			slog.String("event", event),
			slog.Int("removed", n),
		)
	}
}

// Listening returns the number of subscriptions the view holds.
func (v *View) Listening() int {
	return v.listeners.size()
}

func (v *View) prepareListen(em Emitter, event, method string) (ListenerFunc, error) {
	if v.tornDown {
		return nil, v.bindFailed("listen", event, method, ErrTornDown)
	}
	if !validEmitter(em) {
		return nil, v.bindFailed("listen", event, method, ErrInvalidEmitter)
	}
	fn, err := v.methods.listenerFunc(method)
	if err != nil {
		return nil, v.bindFailed("listen", event, method, err)
	}
	return fn, nil
}

func (v *View) subscribe(em Emitter, event, method string, fn ListenerFunc) {
	if v.listeners.add(em, event, method, fn) {
		v.logger.Debug("listen",
			slog.String("event", event),
			slog.String("method", method),
		)
	}
}
