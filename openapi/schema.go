package openapi

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Property is one entry of a trigger's JSON schema. Fields the synthesizer does not use are ignored.
type Property struct {
	Type        string
	Description string
	// Nullable is nil when the schema does not say; only an explicit false makes the property required.
	Nullable *bool
}

// UnmarshalJSON is lenient: a value of the wrong JSON type is treated as absent.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object (e.g. `true` in a permissive schema); keep the zero descriptor.
		*p = Property{}
		return nil
	}
	*p = Property{}
	if s, ok := raw["type"].(string); ok {
		p.Type = s
	}
	if s, ok := raw["description"].(string); ok {
		p.Description = s
	}
	if b, ok := raw["nullable"].(bool); ok {
		p.Nullable = &b
	}
	return nil
}

func (p Property) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if p.Type != "" {
		out["type"] = p.Type
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.Nullable != nil {
		out["nullable"] = *p.Nullable
	}
	return json.Marshal(out)
}

// Required reports whether the descriptor marks the property as non-nullable.
func (p Property) Required() bool {
	return p.Nullable != nil && !*p.Nullable
}

// TriggerSchema maps property names to descriptors, in declaration order.
type TriggerSchema struct {
	props *orderedmap.OrderedMap[string, Property]
}

// NewTriggerSchema returns an empty schema.
func NewTriggerSchema() *TriggerSchema {
	return &TriggerSchema{props: orderedmap.New[string, Property]()}
}

// Set adds or replaces a property. A new name is appended after existing ones.
func (s *TriggerSchema) Set(name string, p Property) *TriggerSchema {
	if s.props == nil {
		s.props = orderedmap.New[string, Property]()
	}
	s.props.Set(name, p)
	return s
}

// Get returns the descriptor for name.
func (s *TriggerSchema) Get(name string) (Property, bool) {
	if s == nil || s.props == nil {
		return Property{}, false
	}
	return s.props.Get(name)
}

func (s *TriggerSchema) Len() int {
	if s == nil || s.props == nil {
		return 0
	}
	return s.props.Len()
}

// Names returns the property names in declaration order.
func (s *TriggerSchema) Names() []string {
	var names []string
	s.Each(func(name string, _ Property) { names = append(names, name) })
	return names
}

// Each calls fn for every property in declaration order.
func (s *TriggerSchema) Each(fn func(name string, p Property)) {
	if s == nil || s.props == nil {
		return
	}
	for pair := s.props.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

func (s *TriggerSchema) UnmarshalJSON(data []byte) error {
	s.props = orderedmap.New[string, Property]()
	return s.props.UnmarshalJSON(data)
}

func (s *TriggerSchema) MarshalJSON() ([]byte, error) {
	if s.props == nil {
		return []byte("{}"), nil
	}
	return s.props.MarshalJSON()
}

// TriggerDefinition is the JSON schema the workflow runtime reports for a request trigger.
type TriggerDefinition struct {
	Type       string         `json:"type,omitempty"`
	Properties *TriggerSchema `json:"properties,omitempty"`
}
