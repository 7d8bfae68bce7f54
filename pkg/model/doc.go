/*
Package model contains the observable attribute containers.

A Soul owns a set of named attributes and triggers a "change" event whenever a Set actually
changes one of them. The event carries two mappings, the previous values and the new values
of the changed keys, in that order. Setting a value egal to the current one is a no-op.

	s, _ := model.New(model.Attributes{"name": "John", "age": 42})
	s.On(model.EventChange, func(args ...any) error {
		old, changed := args[0].(model.Attributes), args[1].(model.Attributes)
		fmt.Println(old, changed)
		return nil
	})
	_ = s.Set(model.Attributes{"age": 43}) // map[age:42] map[age:43]

A Parseable layers per-key parsers in front of Set. Parsers receive the raw value and return
the value to store; the caller's mapping is never modified.

# Undefined

Undefined is a distinct value that can be stored under a key. Get returns it for absent keys,
ToJSON omits it, and the old value of a newly added key is reported as Undefined.

# Extensibility

PreventExtensions and Freeze restrict later writes. Rejected writes return an *ExtensionError
and leave the model untouched.
*/
package model
