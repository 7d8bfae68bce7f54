package soulset

import (
	"encoding/json"
	"iter"

	"github.com/aretw0/soul/pkg/model"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Children is an insertion-ordered set of models. Membership is by identity.
type Children struct {
	items *orderedmap.OrderedMap[model.Model, struct{}]
}

// NewChildren returns a set holding items, duplicates and nils dropped.
func NewChildren(items ...model.Model) *Children {
	c := &Children{items: orderedmap.New[model.Model, struct{}]()}
	for _, item := range items {
		if item != nil {
			c.add(item)
		}
	}
	return c
}

// Len returns the number of members.
func (c *Children) Len() int {
	if c == nil || c.items == nil {
		return 0
	}
	return c.items.Len()
}

// Has reports whether child is a member.
func (c *Children) Has(child model.Model) bool {
	if c.Len() == 0 || child == nil {
		return false
	}
	_, ok := c.items.Get(child)
	return ok
}

// All yields the members in insertion order.
func (c *Children) All() iter.Seq[model.Model] {
	return func(yield func(model.Model) bool) {
		if c.Len() == 0 {
			return
		}
		for pair := c.items.Oldest(); pair != nil; {
			next := pair.Next()
			if !yield(pair.Key) {
				return
			}
			pair = next
		}
	}
}

// Slice returns the members in insertion order.
func (c *Children) Slice() []model.Model {
	out := make([]model.Model, 0, c.Len())
	for child := range c.All() {
		out = append(out, child)
	}
	return out
}

// MarshalJSON encodes the members as an array.
func (c *Children) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Slice())
}

// MarshalYAML encodes the members as a sequence.
func (c *Children) MarshalYAML() (any, error) {
	return c.Slice(), nil
}

func (c *Children) add(child model.Model) bool {
	if c.items == nil {
		c.items = orderedmap.New[model.Model, struct{}]()
	}
	if _, present := c.items.Set(child, struct{}{}); present {
		return false
	}
	return true
}

func (c *Children) delete(child model.Model) bool {
	if c.Len() == 0 {
		return false
	}
	_, present := c.items.Delete(child)
	return present
}
