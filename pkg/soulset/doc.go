/*
Package soulset provides Set, a model that aggregates child models.

Membership changes one child at a time through Add and Remove, which trigger "add" and
"remove" with the child, or wholesale by setting the "children" attribute, which triggers a
regular "change" on the Set. Every member's "change" event is re-triggered on the Set as
"child:change" with the child prepended:

	set.On(soulset.EventChildChange, func(args ...any) error {
		child := args[0].(model.Model)
		old, changed := args[1].(model.Attributes), args[2].(model.Attributes)
		...
	})

A child may belong to several sets. Call Close when a Set is discarded so its members stop
holding subscriptions to it.
*/
package soulset
