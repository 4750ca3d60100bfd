package logicapp

import (
	"github.com/awantoch/foundryflow/constants"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Workflow is one entry of the host runtime's workflow listing.
type Workflow struct {
	Name     string                                  `json:"name"`
	Kind     string                                  `json:"kind,omitempty"`
	Health   *Health                                 `json:"health,omitempty"`
	Triggers *orderedmap.OrderedMap[string, Trigger] `json:"triggers,omitempty"`
}

type Health struct {
	State string `json:"state"`
}

type Trigger struct {
	Kind string `json:"kind"`
	Type string `json:"type"`
}

// HTTPTrigger returns the name of the first trigger of kind Http, in the order the service
// listed them.
func (w Workflow) HTTPTrigger() (string, bool) {
	if w.Triggers == nil {
		return "", false
	}
	for pair := w.Triggers.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Kind == constants.TriggerKindHTTP {
			return pair.Key, true
		}
	}
	return "", false
}

// TriggerNames lists trigger names in listing order.
func (w Workflow) TriggerNames() []string {
	if w.Triggers == nil {
		return nil
	}
	names := make([]string, 0, w.Triggers.Len())
	for pair := w.Triggers.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// HealthState returns the reported health, or "" when the listing omits it.
func (w Workflow) HealthState() string {
	if w.Health == nil {
		return ""
	}
	return w.Health.State
}
