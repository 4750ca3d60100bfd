package foundry

import (
	"context"
	"net/url"
	"strconv"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/tool"
)

// AgentKindPrompt is the only agent kind this client creates.
const AgentKindPrompt = "prompt"

// AgentsV2Client speaks the named agents API, where agents are addressed by name and each
// update produces a new version.
type AgentsV2Client struct {
	arm        *arm.Client
	apiVersion string
	pageSize   int
}

func NewAgentsV2Client(c *arm.Client, apiVersion string) *AgentsV2Client {
	if apiVersion == "" {
		apiVersion = constants.DefaultAgentsAPIVersion
	}
	return &AgentsV2Client{arm: c, apiVersion: apiVersion, pageSize: constants.DefaultAgentsPageSize}
}

var _ agent.Service = (*AgentsV2Client)(nil)

// PromptDefinition is the definition body of a prompt agent.
type PromptDefinition struct {
	Kind         string            `json:"kind"`
	Model        string            `json:"model"`
	Instructions string            `json:"instructions,omitempty"`
	Tools        []tool.Definition `json:"tools"`
	Temperature  *float64          `json:"temperature,omitempty"`
}

// NamedAgent is the wire form of a v2 agent.
type NamedAgent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Versions struct {
		Latest struct {
			Version     string           `json:"version"`
			Description string           `json:"description,omitempty"`
			Definition  PromptDefinition `json:"definition"`
		} `json:"latest"`
	} `json:"versions"`
}

func (a NamedAgent) agent() agent.Agent {
	latest := a.Versions.Latest
	return agent.Agent{
		ID:          a.ID,
		Name:        a.Name,
		Description: latest.Description,
		Model:       latest.Definition.Model,
		Version:     latest.Version,
	}
}

func promptDefinition(def agent.Definition) PromptDefinition {
	tools := def.Tools
	if tools == nil {
		tools = []tool.Definition{}
	}
	return PromptDefinition{
		Kind:         AgentKindPrompt,
		Model:        def.Model,
		Instructions: def.Instructions,
		Tools:        tools,
		Temperature:  def.Temperature,
	}
}

func (c *AgentsV2Client) agentURL(name string) string {
	return c.arm.URL("/agents/"+url.PathEscape(name), arm.APIVersion(c.apiVersion))
}

func (c *AgentsV2Client) List(ctx context.Context) ([]agent.Agent, error) {
	var all []agent.Agent
	after := ""
	for {
		q := arm.APIVersion(c.apiVersion)
		q.Set("limit", strconv.Itoa(c.pageSize))
		if after != "" {
			q.Set("after", after)
		}
		var page struct {
			Data    []NamedAgent `json:"data"`
			LastID  string       `json:"last_id"`
			HasMore bool         `json:"has_more"`
		}
		if err := c.arm.Get(ctx, c.arm.URL("/agents", q), &page); err != nil {
			return nil, err
		}
		for _, a := range page.Data {
			all = append(all, a.agent())
		}
		if !page.HasMore || page.LastID == "" || page.LastID == after {
			return all, nil
		}
		after = page.LastID
	}
}

func (c *AgentsV2Client) Create(ctx context.Context, def agent.Definition) (*agent.Agent, error) {
	body := struct {
		Name       string           `json:"name"`
		Definition PromptDefinition `json:"definition"`
	}{Name: def.Name, Definition: promptDefinition(def)}

	var out NamedAgent
	if err := c.arm.Post(ctx, c.arm.URL("/agents", arm.APIVersion(c.apiVersion)), body, &out); err != nil {
		return nil, err
	}
	a := out.agent()
	return &a, nil
}

func (c *AgentsV2Client) Update(ctx context.Context, existing agent.Agent, def agent.Definition) (*agent.Agent, error) {
	body := struct {
		Definition PromptDefinition `json:"definition"`
	}{Definition: promptDefinition(def)}

	var out NamedAgent
	if err := c.arm.Post(ctx, c.agentURL(existing.Name), body, &out); err != nil {
		return nil, err
	}
	a := out.agent()
	return &a, nil
}

func (c *AgentsV2Client) Delete(ctx context.Context, existing agent.Agent) error {
	return c.arm.Delete(ctx, c.agentURL(existing.Name))
}
