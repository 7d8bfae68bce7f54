package soulset

import "errors"

// ErrInvalidChildren is returned when the children attribute is set to something that is not
// a collection of models.
var ErrInvalidChildren = errors.New("children must be a collection of models")

// ErrNilChild is returned when a nil model is added or removed.
var ErrNilChild = errors.New("child is nil")

// ErrReadOnly is returned when a derived attribute such as size is set.
var ErrReadOnly = errors.New("attribute is read-only")
