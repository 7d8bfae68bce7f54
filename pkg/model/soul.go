package model

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aretw0/soul/pkg/events"
	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// EventChange is triggered after a Set that changed at least one attribute.
// Listeners receive (old Attributes, new Attributes), both limited to the changed keys.
// Keys that did not exist before carry Undefined as their old value.
const EventChange = "change"

// Model is the behaviour shared by Soul, Parseable and the aggregates built on them.
type Model interface {
	events.Source
	Get(key string) any
	Lookup(key string) (any, bool)
	Set(attrs Attributes) error
	SetKey(key string, value any) error
	ToJSON() Attributes
}

var _ Model = (*Soul)(nil)

type extensibility int

const (
	extensible extensibility = iota
	nonExtensible
	frozen
)

// Soul is an observable attribute container.
type Soul struct {
	events.Emitter

	attrs  *orderedmap.OrderedMap[string, any]
	state  extensibility
	logger *slog.Logger
}

// Option configures a Soul before its initial attributes are set.
type Option func(*Soul)

// WithLogger sets the structured logger used for change diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Soul) {
		s.logger = logger
	}
}

// WithListener subscribes fn before the initial attributes are set,
// so it observes the change triggered by construction.
func WithListener(event string, fn events.Listener) Option {
	return func(s *Soul) {
		s.On(event, fn)
	}
}

// WithDefaults stores attrs directly, without parsing or triggering events.
// The initial attributes passed to the constructor are diffed against them.
func WithDefaults(attrs Attributes) Option {
	return func(s *Soul) {
		for _, key := range attrs.Keys() {
			s.attrs.Set(key, attrs[key])
		}
	}
}

// New creates a Soul and sets attrs on it. A nil attrs creates an empty Soul.
func New(attrs Attributes, opts ...Option) (*Soul, error) {
	s := newSoul(opts)
	if attrs != nil {
		if err := s.Set(attrs); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newSoul(opts []Option) *Soul {
	s := &Soul{attrs: orderedmap.New[string, any]()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Get returns the attribute value, or Undefined when the key is not set.
func (s *Soul) Get(key string) any {
	if v, ok := s.attrs.Get(key); ok {
		return v
	}
	return Undefined
}

// Lookup returns the attribute value and whether the key is set.
func (s *Soul) Lookup(key string) (any, bool) {
	return s.attrs.Get(key)
}

// Has reports whether key is set, including keys set to Undefined.
func (s *Soul) Has(key string) bool {
	_, ok := s.attrs.Get(key)
	return ok
}

// Len returns the number of attributes.
func (s *Soul) Len() int {
	return s.attrs.Len()
}

// Keys returns the attribute keys in insertion order.
func (s *Soul) Keys() []string {
	keys := make([]string, 0, s.attrs.Len())
	for pair := s.attrs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Set merges attrs into the Soul and triggers EventChange when anything changed.
// The caller's mapping is never modified. A listener error is returned after the
// attributes have been committed.
func (s *Soul) Set(attrs Attributes) error {
	if attrs == nil {
		return invalidAttributes(attrs)
	}

	keys := attrs.Keys()
	old := s.diff(keys, attrs)
	if len(old) == 0 {
		return nil
	}

	if err := s.checkWritable(keys, old); err != nil {
		return err
	}

	changed := make(Attributes, len(old))
	for _, key := range keys {
		s.attrs.Set(key, attrs[key])
		if _, ok := old[key]; ok {
			changed[key] = attrs[key]
		}
	}

	s.logger.Debug("attributes changed", "keys", changed.Keys())
	return s.Trigger(EventChange, old, changed)
}

// SetKey sets a single attribute.
func (s *Soul) SetKey(key string, value any) error {
	return s.Set(Attributes{key: value})
}

// Assign sets attributes from a mapping or a struct.
// Structs are decoded with mapstructure, embedded structs flattened into the top level.
func (s *Soul) Assign(v any) error {
	attrs, err := Normalize(v)
	if err != nil {
		return err
	}
	return s.Set(attrs)
}

// Diff returns the previous value of every key in attrs whose value would change.
func (s *Soul) Diff(attrs Attributes) Attributes {
	return s.diff(attrs.Keys(), attrs)
}

func (s *Soul) diff(keys []string, attrs Attributes) Attributes {
	old := make(Attributes)
	for _, key := range keys {
		current, ok := s.attrs.Get(key)
		if !ok {
			old[key] = Undefined
			continue
		}
		if !Egal(current, attrs[key]) {
			old[key] = current
		}
	}
	return old
}

func (s *Soul) checkWritable(keys []string, old Attributes) error {
	for _, key := range keys {
		if _, ok := old[key]; !ok {
			continue
		}
		switch {
		case s.state == frozen:
			return &ExtensionError{Key: key, Err: ErrFrozen}
		case s.state == nonExtensible && !s.Has(key):
			return &ExtensionError{Key: key, Err: ErrNotExtensible}
		}
	}
	return nil
}

// PreventExtensions rejects every later Set that would add a new key.
// Existing keys stay writable.
func (s *Soul) PreventExtensions() {
	if s.state == extensible {
		s.state = nonExtensible
	}
}

// Freeze rejects every later Set that would change an attribute.
func (s *Soul) Freeze() {
	s.state = frozen
}

// IsExtensible reports whether new keys can still be added.
func (s *Soul) IsExtensible() bool {
	return s.state == extensible
}

// IsFrozen reports whether Freeze has been called.
func (s *Soul) IsFrozen() bool {
	return s.state == frozen
}

// ToJSON returns every attribute whose value is not Undefined.
func (s *Soul) ToJSON() Attributes {
	out := make(Attributes, s.attrs.Len())
	for pair := s.attrs.Oldest(); pair != nil; pair = pair.Next() {
		if IsUndefined(pair.Value) {
			continue
		}
		out[pair.Key] = pair.Value
	}
	return out
}

// MarshalJSON encodes ToJSON keeping insertion order.
func (s *Soul) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any]()
	for pair := s.attrs.Oldest(); pair != nil; pair = pair.Next() {
		if IsUndefined(pair.Value) {
			continue
		}
		out.Set(pair.Key, pair.Value)
	}
	return out.MarshalJSON()
}

// MarshalYAML encodes ToJSON as a mapping keeping insertion order.
func (s *Soul) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := s.attrs.Oldest(); pair != nil; pair = pair.Next() {
		if IsUndefined(pair.Value) {
			continue
		}

		key := &yaml.Node{}
		key.SetString(pair.Key)

		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", pair.Key, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// Decode copies the attributes into out, typically a pointer to a struct.
func (s *Soul) Decode(out any) error {
	return mapstructure.Decode(map[string]any(s.ToJSON()), out)
}

// String dumps every attribute, Undefined included, in insertion order.
func (s *Soul) String() string {
	var b strings.Builder
	b.WriteString("Soul{")
	for pair := s.attrs.Oldest(); pair != nil; pair = pair.Next() {
		if pair != s.attrs.Oldest() {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", pair.Key, pair.Value)
	}
	b.WriteString("}")
	return b.String()
}

// Normalize turns the accepted Set inputs into Attributes: Attributes, map[string]any,
// or a struct (or pointer to one). Anything else fails with ErrInvalidAttributes.
func Normalize(v any) (Attributes, error) {
	switch attrs := v.(type) {
	case Attributes:
		if attrs == nil {
			return nil, invalidAttributes(v)
		}
		return attrs, nil
	case map[string]any:
		if attrs == nil {
			return nil, invalidAttributes(v)
		}
		return Attributes(attrs), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, invalidAttributes(v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, invalidAttributes(v)
	}

	var out map[string]any
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &out,
		Squash: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(rv.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAttributes, err)
	}
	return Attributes(out), nil
}
