// Package logicapp talks to the workflow management API of a Logic App Standard site.
package logicapp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/openapi"
)

// Client lists workflows and reads trigger metadata of one site.
type Client struct {
	arm            *arm.Client
	subscriptionID string
	resourceGroup  string
}

// NewClient returns a Client for the given subscription and resource group. c must carry a
// management-audience token.
func NewClient(c *arm.Client, subscriptionID, resourceGroup string) *Client {
	return &Client{arm: c, subscriptionID: subscriptionID, resourceGroup: resourceGroup}
}

func (c *Client) workflowsPath(site string) string {
	return arm.ResourceGroupPath(c.subscriptionID, c.resourceGroup) +
		"/providers/Microsoft.Web/sites/" + url.PathEscape(site) +
		"/hostruntime/runtime/webhooks/workflow/api/management/workflows"
}

func (c *Client) triggerPath(site, workflow, trigger string) string {
	return c.workflowsPath(site) + "/" + url.PathEscape(workflow) + "/triggers/" + url.PathEscape(trigger)
}

// ListWorkflows returns every workflow of site.
func (c *Client) ListWorkflows(ctx context.Context, site string) ([]Workflow, error) {
	var out []Workflow
	u := c.arm.URL(c.workflowsPath(site), arm.APIVersion(constants.APIVersionWorkflowList))
	if err := c.arm.Get(ctx, u, &out); err != nil {
		return nil, fmt.Errorf("list workflows of %s: %w", site, err)
	}
	return out, nil
}

// TriggerSchema fetches the JSON schema the trigger accepts.
func (c *Client) TriggerSchema(ctx context.Context, site, workflow, trigger string) (*openapi.TriggerDefinition, error) {
	var out openapi.TriggerDefinition
	u := c.arm.URL(c.triggerPath(site, workflow, trigger)+"/schemas/json", arm.APIVersion(constants.APIVersionTrigger))
	if err := c.arm.Get(ctx, u, &out); err != nil {
		return nil, fmt.Errorf("get trigger schema %s/%s: %w", workflow, trigger, err)
	}
	if out.Properties == nil {
		out.Properties = openapi.NewTriggerSchema()
	}
	return &out, nil
}

// CallbackURL returns the signed URL that runs the trigger. It may be "" if the service omits it.
func (c *Client) CallbackURL(ctx context.Context, site, workflow, trigger string) (string, error) {
	var out struct {
		Value string `json:"value"`
	}
	u := c.arm.URL(c.triggerPath(site, workflow, trigger)+"/listCallbackUrl", arm.APIVersion(constants.APIVersionTrigger))
	if err := c.arm.Post(ctx, u, nil, &out); err != nil {
		return "", fmt.Errorf("list callback url %s/%s: %w", workflow, trigger, err)
	}
	return out.Value, nil
}
