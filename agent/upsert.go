package agent

import (
	"context"
	"fmt"

	"github.com/awantoch/foundryflow/utils"
)

// Strategy decides what happens when an agent with the same name already exists.
type Strategy int

const (
	// UpdateInPlace keeps the agent's identity and replaces its definition.
	UpdateInPlace Strategy = iota
	// DeleteThenCreate removes the existing agent and creates a fresh one.
	DeleteThenCreate
)

func (s Strategy) String() string {
	switch s {
	case UpdateInPlace:
		return "update-in-place"
	case DeleteThenCreate:
		return "delete-then-create"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Action reports which mutation Upsert performed.
type Action string

const (
	Created   Action = "created"
	Updated   Action = "updated"
	Recreated Action = "recreated"
)

// Upserter makes the service hold exactly the given definition under its name.
// Concurrent upserts of the same name can race: list and mutate are separate calls.
type Upserter struct {
	Service  Service
	Strategy Strategy
	// OnList, when set, sees the full listing before any mutation.
	OnList func([]Agent)
}

func NewUpserter(svc Service, strategy Strategy) *Upserter {
	return &Upserter{Service: svc, Strategy: strategy}
}

// Upsert creates def.Name if absent; otherwise updates or recreates it according to Strategy.
func (u *Upserter) Upsert(ctx context.Context, def Definition) (*Agent, Action, error) {
	if def.Name == "" {
		return nil, "", fmt.Errorf("upsert agent: name is required")
	}
	agents, err := u.Service.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list agents: %w", err)
	}
	if u.OnList != nil {
		u.OnList(agents)
	}

	existing, found := Find(agents, def.Name)
	if !found {
		a, err := u.Service.Create(ctx, def)
		if err != nil {
			return nil, "", fmt.Errorf("create agent %s: %w", def.Name, err)
		}
		utils.Info("Created agent with id %s name: %s with model %s", a.ID, def.Name, def.Model)
		return a, Created, nil
	}

	utils.Info("Found existing agent with ID: %s and name: %s", existing.ID, existing.Name)
	switch u.Strategy {
	case DeleteThenCreate:
		utils.Info("Deleting existing agent %s before creating a new one", existing.Name)
		if err := u.Service.Delete(ctx, existing); err != nil {
			return nil, "", fmt.Errorf("delete agent %s: %w", existing.Name, err)
		}
		a, err := u.Service.Create(ctx, def)
		if err != nil {
			return nil, "", fmt.Errorf("recreate agent %s: %w", def.Name, err)
		}
		utils.Info("Recreated agent with id %s name: %s with model %s", a.ID, def.Name, def.Model)
		return a, Recreated, nil
	case UpdateInPlace:
		a, err := u.Service.Update(ctx, existing, def)
		if err != nil {
			return nil, "", fmt.Errorf("update agent %s: %w", def.Name, err)
		}
		utils.Info("Updated agent with id %s name: %s with model %s", a.ID, def.Name, def.Model)
		return a, Updated, nil
	default:
		return nil, "", fmt.Errorf("upsert agent %s: unknown strategy %s", def.Name, u.Strategy)
	}
}
