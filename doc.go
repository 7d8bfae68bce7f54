/*
Package soul provides observable attribute models for Go.

A Soul holds an ordered set of attributes and emits a "change" event whenever Set actually
alters something. The event carries two mappings limited to the keys that changed: their
previous values and their new ones. Keys that did not exist before are reported with
Undefined as their previous value.

# Concept

Values are compared with same-value semantics, so setting an attribute to what it already
holds is silent. A Parseable model runs per-key parsers over incoming values before they are
compared. A Set is a Parseable whose "children" attribute is a collection of other models;
it forwards their change events as "child:change" with the child prepended to the arguments.

# Packages

  - pkg/events: the synchronous emitter every model embeds.
  - pkg/model: Soul, Parseable, Attributes and the comparison rules.
  - pkg/soulset: the aggregate Set and its Children collection.
  - pkg/observability: a Prometheus recorder for model events.

# Usage

	person, err := soul.New(soul.Attributes{"name": "John", "age": 42})
	if err != nil {
		log.Fatal(err)
	}

	person.On(model.EventChange, func(args ...any) error {
		old, changed := args[0].(model.Attributes), args[1].(model.Attributes)
		log.Printf("changed %v from %v", changed, old)
		return nil
	})

	// Fires once with old = {age: 42} and new = {age: 43}.
	_ = person.SetKey("age", 43)

Models are not safe for concurrent use.
*/
package soul
