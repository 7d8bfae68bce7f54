package model

// ParseFunc transforms an incoming attribute value before it is merged.
type ParseFunc func(value any) (any, error)

// Parsers maps attribute keys to their transform.
type Parsers map[string]ParseFunc

var _ Model = (*Parseable)(nil)

// Parseable is a Soul whose writes pass through per-key parsers first.
// Parsers are looked up on every write, so they can be added or removed at any time.
type Parseable struct {
	*Soul

	parsers Parsers
}

// NewParseable creates a Parseable with the given parsers and sets attrs through them.
func NewParseable(attrs Attributes, parsers Parsers, opts ...Option) (*Parseable, error) {
	p := &Parseable{
		Soul:    newSoul(opts),
		parsers: make(Parsers, len(parsers)),
	}
	for key, fn := range parsers {
		p.SetParser(key, fn)
	}

	if attrs != nil {
		if err := p.Set(attrs); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SetParser registers fn for key, replacing any previous parser. A nil fn removes it.
func (p *Parseable) SetParser(key string, fn ParseFunc) {
	if fn == nil {
		p.RemoveParser(key)
		return
	}
	if p.parsers == nil {
		p.parsers = make(Parsers)
	}
	p.parsers[key] = fn
}

// RemoveParser unregisters the parser for key.
func (p *Parseable) RemoveParser(key string) {
	delete(p.parsers, key)
}

// Parser returns the parser registered for key.
func (p *Parseable) Parser(key string) (ParseFunc, bool) {
	fn, ok := p.parsers[key]
	return fn, ok
}

// Parse returns a copy of attrs with every parsed key replaced by its parser's result.
func (p *Parseable) Parse(attrs Attributes) (Attributes, error) {
	if attrs == nil {
		return nil, invalidAttributes(attrs)
	}

	parsed := make(Attributes, len(attrs))
	for _, key := range attrs.Keys() {
		value := attrs[key]
		if fn, ok := p.parsers[key]; ok {
			v, err := fn(value)
			if err != nil {
				return nil, &ParseError{Key: key, Err: err}
			}
			value = v
		}
		parsed[key] = value
	}
	return parsed, nil
}

// Set parses attrs and merges the result like Soul.Set.
func (p *Parseable) Set(attrs Attributes) error {
	parsed, err := p.Parse(attrs)
	if err != nil {
		return err
	}
	return p.Soul.Set(parsed)
}

// SetKey parses and sets a single attribute.
func (p *Parseable) SetKey(key string, value any) error {
	return p.Set(Attributes{key: value})
}

// Assign parses and sets attributes from a mapping or a struct.
func (p *Parseable) Assign(v any) error {
	attrs, err := Normalize(v)
	if err != nil {
		return err
	}
	return p.Set(attrs)
}
