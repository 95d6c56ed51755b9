package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"flowstate/internal/domain"
	"flowstate/internal/store"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports graph data from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.GraphFragment, error) {
	var doc fragmentDoc
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return doc.toFragment()
}

// Export exports graph data to YAML
func (c *YAMLCodec) Export(fragment *domain.GraphFragment, w io.Writer) error {
	doc := newFragmentDoc(fragment)
	return c.encode(&doc, w)
}

// yamlAction is a script step; the payload is any YAML value and is
// re-encoded as JSON for store.Dispatch
type yamlAction struct {
	Type    string `yaml:"type"`
	Payload any    `yaml:"payload"`
}

// ParseScript reads a YAML sequence of actions
func (c *YAMLCodec) ParseScript(r io.Reader) ([]store.Action, error) {
	var steps []yamlAction
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&steps); err != nil {
		return nil, fmt.Errorf("failed to parse YAML script: %w", err)
	}

	actions := make([]store.Action, 0, len(steps))
	for i, step := range steps {
		action := store.Action{Type: store.ActionType(step.Type)}
		if step.Payload != nil {
			raw, err := json.Marshal(step.Payload)
			if err != nil {
				return nil, fmt.Errorf("action %d: failed to encode payload: %w", i, err)
			}
			action.Payload = raw
		}
		actions = append(actions, action)
	}

	if err := validateScript(actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// EncodeState writes a state snapshot as YAML
func (c *YAMLCodec) EncodeState(state domain.State, w io.Writer) error {
	return c.encode(&state, w)
}

func (c *YAMLCodec) encode(v any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
