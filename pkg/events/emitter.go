package events

import (
	"reflect"
	"slices"
)

// Listener receives the arguments of a triggered event.
type Listener func(args ...any) error

// Handle identifies a single subscription. The zero Handle never matches.
type Handle uint64

// Source is the subscription surface of anything that embeds an Emitter.
type Source interface {
	On(name string, fn Listener, opts ...Option) Handle
	Once(name string, fn Listener, opts ...Option) Handle
	Off(name string, h Handle)
	OffContext(name string, ctx any)
	Trigger(name string, args ...any) error
}

// Option configures a subscription.
type Option func(*subscription)

// WithContext binds an owner to the subscription so it can later be removed with OffContext.
func WithContext(ctx any) Option {
	return func(s *subscription) {
		s.ctx = ctx
	}
}

// WithArgs binds arguments that are passed before the triggered ones.
func WithArgs(args ...any) Option {
	return func(s *subscription) {
		s.args = append(s.args, args...)
	}
}

type subscription struct {
	handle Handle
	fn     Listener
	ctx    any
	args   []any
	once   bool
}

// Emitter dispatches named events to listeners. The zero value is ready to use.
type Emitter struct {
	listeners map[string][]*subscription
	next      Handle
}

// On subscribes fn to the named event.
func (e *Emitter) On(name string, fn Listener, opts ...Option) Handle {
	return e.subscribe(name, fn, false, opts)
}

// Once subscribes fn to the next occurrence of the named event only.
func (e *Emitter) Once(name string, fn Listener, opts ...Option) Handle {
	return e.subscribe(name, fn, true, opts)
}

func (e *Emitter) subscribe(name string, fn Listener, once bool, opts []Option) Handle {
	if fn == nil {
		return 0
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]*subscription)
	}

	e.next++
	sub := &subscription{handle: e.next, fn: fn, once: once}
	for _, opt := range opts {
		opt(sub)
	}

	e.listeners[name] = append(e.listeners[name], sub)
	return sub.handle
}

// Off removes the subscription identified by h.
// An empty name searches every event.
func (e *Emitter) Off(name string, h Handle) {
	if h == 0 {
		return
	}
	e.remove(name, func(s *subscription) bool { return s.handle == h })
}

// OffContext removes every subscription bound to ctx with WithContext.
// An empty name searches every event. Contexts holding non-comparable values
// (maps, slices, funcs) never match.
func (e *Emitter) OffContext(name string, ctx any) {
	if ctx == nil || !reflect.ValueOf(ctx).Comparable() {
		return
	}
	e.remove(name, func(s *subscription) bool { return sameContext(s.ctx, ctx) })
}

func sameContext(bound, ctx any) bool {
	if bound == nil || reflect.TypeOf(bound) != reflect.TypeOf(ctx) {
		return false
	}
	return reflect.ValueOf(bound).Comparable() && bound == ctx
}

// Clear removes all subscriptions of the named event, or of every event when name is empty.
func (e *Emitter) Clear(name string) {
	if name == "" {
		e.listeners = nil
		return
	}
	delete(e.listeners, name)
}

func (e *Emitter) remove(name string, match func(*subscription) bool) {
	if name != "" {
		e.removeFrom(name, match)
		return
	}
	for key := range e.listeners {
		e.removeFrom(key, match)
	}
}

func (e *Emitter) removeFrom(name string, match func(*subscription) bool) {
	subs, ok := e.listeners[name]
	if !ok {
		return
	}

	// Trigger iterates a snapshot, so a fresh slice keeps in-flight deliveries intact.
	kept := slices.DeleteFunc(slices.Clone(subs), match)
	if len(kept) == 0 {
		delete(e.listeners, name)
		return
	}
	e.listeners[name] = kept
}

// ListenerCount reports how many subscriptions the named event has.
func (e *Emitter) ListenerCount(name string) int {
	return len(e.listeners[name])
}

// Trigger calls every listener of the named event with args.
// Listeners subscribed during delivery are not called for this trigger.
// The first listener error stops delivery and is returned as a *ListenerError.
func (e *Emitter) Trigger(name string, args ...any) error {
	subs := e.listeners[name]
	if len(subs) == 0 {
		return nil
	}

	snapshot := slices.Clone(subs)
	for _, sub := range snapshot {
		if sub.once {
			if !e.pending(name, sub) {
				continue
			}
			e.Off(name, sub.handle)
		}

		callArgs := args
		if len(sub.args) > 0 {
			callArgs = append(slices.Clone(sub.args), args...)
		}

		if err := sub.fn(callArgs...); err != nil {
			return &ListenerError{Event: name, Err: err}
		}
	}

	return nil
}

// pending reports whether sub is still subscribed, which a once listener
// may not be when an earlier listener of the same delivery removed it.
func (e *Emitter) pending(name string, sub *subscription) bool {
	return slices.Contains(e.listeners[name], sub)
}
