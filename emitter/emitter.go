// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

// Package emitter is a small publish/subscribe primitive keyed by event name.
//
// Handlers are registered as *Handler values and compared by pointer, so the
// value passed to On is the value that must be passed to Off:
//
//	h := emitter.NewHandler(func(args ...any) { fmt.Println(args...) })
//	e.On("changed", h)
//	e.Emit("changed", 42)
//	e.Off("changed", h)
package emitter

import "sync"

// Handler is a callback registered with an Emitter.
type Handler struct {
	fn func(args ...any)
}

// NewHandler returns a new handler calling fn. Two handlers created from the
// same fn are distinct.
func NewHandler(fn func(args ...any)) *Handler {
	return &Handler{fn: fn}
}

// Call invokes the handler.
func (h *Handler) Call(args ...any) {
	h.fn(args...)
}

type subscription struct {
	handler *Handler
	once    bool
	removed bool
}

// Emitter is a set of handlers keyed by event name. Handlers run on the
// goroutine that calls Emit, in the order they were registered. The zero value
// is ready to use.
type Emitter struct {
	mu   sync.Mutex
	subs map[string][]*subscription
}

// New returns an empty emitter.
func New() *Emitter {
	return &Emitter{}
}

// On registers h for event. Registering the same handler twice for the same
// event calls it twice per Emit.
func (e *Emitter) On(event string, h *Handler) {
	e.add(event, h, false)
}

// Once registers h for event and removes it before its first call.
func (e *Emitter) Once(event string, h *Handler) {
	e.add(event, h, true)
}

func (e *Emitter) add(event string, h *Handler, once bool) {
	if h == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs == nil {
		e.subs = map[string][]*subscription{}
	}
	e.subs[event] = append(e.subs[event], &subscription{handler: h, once: once})
}

// Off removes the earliest registration of h for event. It is a no-op if h is
// not registered.
func (e *Emitter) Off(event string, h *Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.subs[event]
	for i, s := range list {
		if s.handler == h {
			e.removeAt(event, list, i)
			return
		}
	}
}

// RemoveAll removes every handler for event.
func (e *Emitter) RemoveAll(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.subs[event] {
		s.removed = true
	}
	delete(e.subs, event)
}

// Reset removes every handler for every event.
func (e *Emitter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, list := range e.subs {
		for _, s := range list {
			s.removed = true
		}
	}
	e.subs = nil
}

// Emit calls every handler registered for event with args. Handlers removed
// while Emit is running are not called after their removal; handlers added
// while Emit is running are not called for this event.
func (e *Emitter) Emit(event string, args ...any) {
	e.mu.Lock()
	list := e.subs[event]
	snapshot := make([]*subscription, len(list))
	copy(snapshot, list)
	e.mu.Unlock()

	for _, s := range snapshot {
		e.mu.Lock()
		if s.removed {
			e.mu.Unlock()
			continue
		}
		if s.once {
			e.removeSub(event, s)
		}
		e.mu.Unlock()
		s.handler.Call(args...)
	}
}

// ListenerCount returns the number of handlers registered for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs[event])
}

// HasListeners reports whether any handler is registered for event.
func (e *Emitter) HasListeners(event string) bool {
	return e.ListenerCount(event) > 0
}

func (e *Emitter) removeSub(event string, s *subscription) {
	list := e.subs[event]
	for i, existing := range list {
		if existing == s {
			e.removeAt(event, list, i)
			return
		}
	}
}

// removeAt must be called with e.mu held.
func (e *Emitter) removeAt(event string, list []*subscription, i int) {
	list[i].removed = true
	list = append(list[:i:i], list[i+1:]...)
	if len(list) == 0 {
		delete(e.subs, event)
		return
	}
	e.subs[event] = list
}
