// Package foundry is a REST client for an AI Foundry project: agents, threads, runs and connections.
package foundry

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/tool"
)

// AgentsClient speaks the classic assistants API, where agents are addressed by ID and
// updated in place.
type AgentsClient struct {
	arm        *arm.Client
	apiVersion string
	pageSize   int
}

// NewAgentsClient returns a client for the project endpoint c is rooted at. c must carry an
// AI Foundry audience token.
func NewAgentsClient(c *arm.Client, apiVersion string) *AgentsClient {
	if apiVersion == "" {
		apiVersion = constants.DefaultAgentsAPIVersion
	}
	return &AgentsClient{arm: c, apiVersion: apiVersion, pageSize: constants.DefaultAgentsPageSize}
}

var _ agent.Service = (*AgentsClient)(nil)

// Assistant is the wire form of a classic agent.
type Assistant struct {
	ID           string            `json:"id"`
	Object       string            `json:"object,omitempty"`
	CreatedAt    int64             `json:"created_at,omitempty"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Model        string            `json:"model"`
	Instructions string            `json:"instructions,omitempty"`
	Tools        []tool.Definition `json:"tools,omitempty"`
	Temperature  *float64          `json:"temperature,omitempty"`
}

func (a Assistant) agent() agent.Agent {
	return agent.Agent{ID: a.ID, Name: a.Name, Description: a.Description, Model: a.Model}
}

type assistantRequest struct {
	Model        string            `json:"model"`
	Name         string            `json:"name,omitempty"`
	Instructions string            `json:"instructions"`
	Tools        []tool.Definition `json:"tools"`
	Temperature  *float64          `json:"temperature,omitempty"`
}

func newAssistantRequest(def agent.Definition, withName bool) assistantRequest {
	req := assistantRequest{
		Model:        def.Model,
		Instructions: def.Instructions,
		Tools:        def.Tools,
		Temperature:  def.Temperature,
	}
	if req.Tools == nil {
		req.Tools = []tool.Definition{}
	}
	if withName {
		req.Name = def.Name
	}
	return req
}

func (c *AgentsClient) query() url.Values {
	return arm.APIVersion(c.apiVersion)
}

// List walks every page of the listing.
func (c *AgentsClient) List(ctx context.Context) ([]agent.Agent, error) {
	var all []agent.Agent
	after := ""
	for {
		q := c.query()
		q.Set("limit", strconv.Itoa(c.pageSize))
		if after != "" {
			q.Set("after", after)
		}
		var page struct {
			Data    []Assistant `json:"data"`
			FirstID string      `json:"first_id"`
			LastID  string      `json:"last_id"`
			HasMore bool        `json:"has_more"`
		}
		if err := c.arm.Get(ctx, c.arm.URL("/assistants", q), &page); err != nil {
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

func (c *AgentsClient) Create(ctx context.Context, def agent.Definition) (*agent.Agent, error) {
	var out Assistant
	if err := c.arm.Post(ctx, c.arm.URL("/assistants", c.query()), newAssistantRequest(def, true), &out); err != nil {
		return nil, err
	}
	a := out.agent()
	return &a, nil
}

func (c *AgentsClient) Update(ctx context.Context, existing agent.Agent, def agent.Definition) (*agent.Agent, error) {
	var out Assistant
	u := c.arm.URL("/assistants/"+url.PathEscape(existing.ID), c.query())
	if err := c.arm.Post(ctx, u, newAssistantRequest(def, false), &out); err != nil {
		return nil, err
	}
	a := out.agent()
	return &a, nil
}

func (c *AgentsClient) Delete(ctx context.Context, existing agent.Agent) error {
	var out struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.arm.Do(ctx, constants.HTTPMethodDELETE, c.arm.URL("/assistants/"+url.PathEscape(existing.ID), c.query()), nil, &out); err != nil {
		return err
	}
	if !out.Deleted {
		return fmt.Errorf("agent %s was not deleted", existing.ID)
	}
	return nil
}
