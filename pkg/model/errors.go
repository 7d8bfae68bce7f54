package model

import (
	"errors"
	"fmt"
)

// ErrInvalidAttributes is returned when Set receives something that is not an attribute mapping.
var ErrInvalidAttributes = errors.New("attributes must be a mapping")

// ErrNotExtensible is returned when a new key is added to a model after PreventExtensions.
var ErrNotExtensible = errors.New("model is not extensible")

// ErrFrozen is returned when any attribute of a frozen model is changed.
var ErrFrozen = errors.New("model is frozen")

// ExtensionError reports the key that was rejected by an extensibility restriction.
type ExtensionError struct {
	Key string // Attribute being written
	Err error  // ErrNotExtensible or ErrFrozen
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("cannot set %q: %v", e.Key, e.Err)
}

func (e *ExtensionError) Unwrap() error {
	return e.Err
}

// ParseError wraps the error returned by a per-key parser.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func invalidAttributes(v any) error {
	return fmt.Errorf("%w: %T", ErrInvalidAttributes, v)
}
