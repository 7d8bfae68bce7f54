package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/soul/pkg/model"
	"gopkg.in/yaml.v3"
)

// LoadAttributes reads a single YAML (or JSON) mapping from path.
// An empty file yields empty attributes.
func LoadAttributes(path string) (model.Attributes, error) {
	docs, err := LoadDocuments(path)
	if err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return model.Attributes{}, nil
	case 1:
		return docs[0], nil
	}
	return nil, fmt.Errorf("%s: expected one document, found %d", path, len(docs))
}

// LoadDocuments reads every YAML document of path. Each must be a mapping.
func LoadDocuments(path string) ([]model.Attributes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	docs, err := DecodeDocuments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// DecodeDocuments decodes a stream of YAML mappings.
func DecodeDocuments(r io.Reader) ([]model.Attributes, error) {
	dec := yaml.NewDecoder(r)

	var docs []model.Attributes
	for i := 0; ; i++ {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		docs = append(docs, model.Attributes(doc))
	}
}
