package soulset

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/aretw0/soul/pkg/events"
	"github.com/aretw0/soul/pkg/model"
)

const (
	// KeyChildren is the attribute holding the *Children collection.
	KeyChildren = "children"
	// KeySize is the read-only attribute reporting the number of children.
	KeySize = "size"

	// EventAdd is triggered with the child after Add inserted it.
	EventAdd = "add"
	// EventRemove is triggered with the child after Remove dropped it.
	EventRemove = "remove"
	// EventChildChange forwards a member's change event as (child, old, new).
	EventChildChange = "child:change"
)

var _ model.Model = (*Set)(nil)

// Set is a model that tracks a collection of child models and re-triggers their
// change events as EventChildChange.
type Set struct {
	*model.Parseable
}

// New creates a Set. The children attribute of attrs, if any, accepts the same
// values as Set.
func New(attrs model.Attributes, opts ...model.Option) (*Set, error) {
	s := &Set{}
	// reconcile goes first so listeners from opts cannot stop it.
	opts = append([]model.Option{
		model.WithDefaults(model.Attributes{KeyChildren: NewChildren()}),
		model.WithListener(model.EventChange, s.reconcile),
	}, opts...)

	p, err := model.NewParseable(nil, nil, opts...)
	if err != nil {
		return nil, err
	}

	s.Parseable = p
	s.SetParser(KeyChildren, s.parseChildren)
	s.SetParser(KeySize, readOnly)

	if attrs != nil {
		if err := s.Set(attrs); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Children returns the current collection.
func (s *Set) Children() *Children {
	if c, ok := s.Get(KeyChildren).(*Children); ok && c != nil {
		return c
	}
	return NewChildren()
}

// Size returns the number of children.
func (s *Set) Size() int {
	return s.Children().Len()
}

// Get returns the attribute value. KeySize always reports Size.
func (s *Set) Get(key string) any {
	if key == KeySize {
		return s.Size()
	}
	return s.Parseable.Get(key)
}

// Lookup is Get with a presence flag. KeySize is always present.
func (s *Set) Lookup(key string) (any, bool) {
	if key == KeySize {
		return s.Size(), true
	}
	return s.Parseable.Lookup(key)
}

// Has reports whether child is a member.
func (s *Set) Has(child model.Model) bool {
	return s.Children().Has(child)
}

// Clear removes subscriptions like Emitter.Clear. Clearing the change event keeps
// the Set's own children bookkeeping subscribed.
func (s *Set) Clear(name string) {
	s.Parseable.Clear(name)
	if name == "" || name == model.EventChange {
		s.On(model.EventChange, s.reconcile)
	}
}

// Values yields the children in insertion order.
func (s *Set) Values() iter.Seq[model.Model] {
	return s.Children().All()
}

// All yields the same sequence as Values.
func (s *Set) All() iter.Seq[model.Model] {
	return s.Values()
}

// Add inserts child and triggers EventAdd. Adding a member again does nothing.
func (s *Set) Add(child model.Model) error {
	if child == nil {
		return ErrNilChild
	}

	if !s.Children().add(child) {
		return nil
	}
	s.onChild(child)
	return s.Trigger(EventAdd, child)
}

// Remove drops child and triggers EventRemove. Removing a non-member does nothing.
func (s *Set) Remove(child model.Model) error {
	if child == nil {
		return ErrNilChild
	}

	if !s.Children().delete(child) {
		return nil
	}
	s.offChild(child)
	return s.Trigger(EventRemove, child)
}

// Close detaches the Set from every child. The membership itself is kept.
func (s *Set) Close() {
	for child := range s.Values() {
		s.offChild(child)
	}
}

// parseChildren turns any supported collection into *Children. An empty collection
// replacing an empty one resolves to the current value so no change is seen.
func (s *Set) parseChildren(value any) (any, error) {
	next, err := toChildren(value)
	if err != nil {
		return nil, err
	}
	if next.Len() == 0 && s.Size() == 0 {
		if current, ok := s.Get(KeyChildren).(*Children); ok {
			return current, nil
		}
	}
	return next, nil
}

var modelType = reflect.TypeFor[model.Model]()

// toChildren accepts nil, *Children, and any slice, array or iter.Seq whose
// elements implement model.Model. []any is checked element by element.
func toChildren(value any) (*Children, error) {
	switch v := value.(type) {
	case nil:
		return NewChildren(), nil
	case *Children:
		if v == nil {
			return NewChildren(), nil
		}
		return v, nil
	case []model.Model:
		return collect(v)
	case iter.Seq[model.Model]:
		return collect(slices.Collect(v))
	case []any:
		items := make([]model.Model, len(v))
		for i, item := range v {
			if item == nil {
				continue
			}
			child, ok := item.(model.Model)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrInvalidChildren, i, item)
			}
			items[i] = child
		}
		return collect(items)
	}

	rv := reflect.ValueOf(value)
	switch {
	case (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Implements(modelType):
		items := make([]model.Model, rv.Len())
		for i := range rv.Len() {
			items[i] = asModel(rv.Index(i))
		}
		return collect(items)
	case isSeq(rv.Type()):
		if rv.IsNil() {
			return NewChildren(), nil
		}
		var items []model.Model
		yieldType := rv.Type().In(0)
		more := reflect.ValueOf(true).Convert(yieldType.Out(0))
		yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
			items = append(items, asModel(args[0]))
			return []reflect.Value{more}
		})
		rv.Call([]reflect.Value{yield})
		return collect(items)
	}
	return nil, fmt.Errorf("%w: got %T", ErrInvalidChildren, value)
}

// isSeq reports whether t is an iter.Seq shaped func yielding models.
func isSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 && yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool &&
		yield.In(0).Implements(modelType)
}

// asModel converts v, returning nil for nil pointers and interfaces.
func asModel(v reflect.Value) model.Model {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface().(model.Model)
}

func readOnly(any) (any, error) {
	return nil, ErrReadOnly
}

func collect(items []model.Model) (*Children, error) {
	c := NewChildren()
	for _, child := range items {
		if child == nil {
			return nil, ErrNilChild
		}
		c.add(child)
	}
	return c, nil
}

// reconcile moves the forwarding subscriptions when the whole collection is replaced.
func (s *Set) reconcile(args ...any) error {
	old, _ := args[0].(model.Attributes)
	prev, ok := old[KeyChildren]
	if !ok {
		return nil
	}

	if c, ok := prev.(*Children); ok {
		for child := range c.All() {
			s.offChild(child)
		}
	}
	for child := range s.Values() {
		s.onChild(child)
	}
	return nil
}

func (s *Set) onChild(child model.Model) {
	child.On(model.EventChange, s.forward, events.WithContext(s), events.WithArgs(child))
}

func (s *Set) offChild(child model.Model) {
	child.OffContext(model.EventChange, s)
}

func (s *Set) forward(args ...any) error {
	return s.Trigger(EventChildChange, args...)
}
