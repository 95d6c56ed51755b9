package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"flowstate/internal/domain"
	"flowstate/internal/store"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports graph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.GraphFragment, error) {
	var doc fragmentDoc
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return doc.toFragment()
}

// Export exports graph data to JSON
func (c *JSONCodec) Export(fragment *domain.GraphFragment, w io.Writer) error {
	return c.encode(newFragmentDoc(fragment), w)
}

// ParseScript reads a JSON array of actions
func (c *JSONCodec) ParseScript(r io.Reader) ([]store.Action, error) {
	var actions []store.Action
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&actions); err != nil {
		return nil, fmt.Errorf("failed to parse JSON script: %w", err)
	}

	if err := validateScript(actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// EncodeState writes a state snapshot as indented JSON
func (c *JSONCodec) EncodeState(state domain.State, w io.Writer) error {
	return c.encode(state, w)
}

func (c *JSONCodec) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
