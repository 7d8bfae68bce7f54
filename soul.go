package soul

import (
	"github.com/aretw0/soul/pkg/model"
	"github.com/aretw0/soul/pkg/soulset"
)

// Version is the current release of the soul module.
const Version = "0.1.0"

// Attributes is the key/value mapping held by every model.
type Attributes = model.Attributes

// Undefined marks a key that has no value. It is distinct from nil.
var Undefined = model.Undefined

// New creates an observable model holding attrs.
func New(attrs Attributes, opts ...model.Option) (*model.Soul, error) {
	return model.New(attrs, opts...)
}

// NewParseable creates a model whose incoming values pass through parsers first.
func NewParseable(attrs Attributes, parsers model.Parsers, opts ...model.Option) (*model.Parseable, error) {
	return model.NewParseable(attrs, parsers, opts...)
}

// NewSet creates an aggregate that bubbles the change events of its children.
// children may be nil, a []model.Model, or any value the "children" parser accepts.
func NewSet(children any, opts ...model.Option) (*soulset.Set, error) {
	var attrs Attributes
	if children != nil {
		attrs = Attributes{soulset.KeyChildren: children}
	}
	return soulset.New(attrs, opts...)
}
