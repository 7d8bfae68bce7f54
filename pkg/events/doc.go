/*
Package events provides the synchronous publish/subscribe capability shared by every model
type in this module.

Listeners run on the caller's goroutine, in registration order, and receive the positional
arguments passed to Trigger (prefixed by any arguments bound with WithArgs). A listener that
returns an error stops delivery for that trigger; the error is handed back to the caller
wrapped in a ListenerError.

# Subscriptions

Go functions are not comparable, so subscriptions are identified by the Handle returned from
On and Once, or by the context value bound with WithContext:

	h := em.On("change", onChange)
	em.Off("change", h)

	em.On("change", forward, events.WithContext(owner), events.WithArgs(child))
	em.OffContext("change", owner)

An Emitter is not safe for concurrent use.
*/
package events
