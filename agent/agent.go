// Package agent keeps agent definitions in sync with the agent service by name.
package agent

import (
	"context"

	"github.com/awantoch/foundryflow/tool"
)

// Definition is what the caller wants the named agent to look like.
type Definition struct {
	Name         string
	Instructions string
	Model        string
	Tools        []tool.Definition
	Temperature  *float64
}

// Agent is an agent as the service reports it.
type Agent struct {
	ID          string
	Name        string
	Description string
	Model       string
	// Version is only reported by the named agents API.
	Version string
}

// Service is the subset of the agent service the upserter needs.
type Service interface {
	// List returns every agent, following pagination.
	List(ctx context.Context) ([]Agent, error)
	Create(ctx context.Context, def Definition) (*Agent, error)
	Update(ctx context.Context, existing Agent, def Definition) (*Agent, error)
	Delete(ctx context.Context, existing Agent) error
}

// Find returns the first agent named name.
func Find(agents []Agent, name string) (Agent, bool) {
	for _, a := range agents {
		if a.Name == name {
			return a, true
		}
	}
	return Agent{}, false
}
