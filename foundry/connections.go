package foundry

import (
	"context"
	"fmt"
	"net/url"

	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/constants"
)

// ConnectionsClient manages project connections through the management API.
type ConnectionsClient struct {
	arm            *arm.Client
	subscriptionID string
	resourceGroup  string
	account        string
	project        string
}

// NewConnectionsClient targets one project of one AI Foundry account. c must carry a
// management-audience token.
func NewConnectionsClient(c *arm.Client, subscriptionID, resourceGroup, account, project string) *ConnectionsClient {
	return &ConnectionsClient{
		arm:            c,
		subscriptionID: subscriptionID,
		resourceGroup:  resourceGroup,
		account:        account,
		project:        project,
	}
}

// Connection is a project connection as listed by the management API.
type Connection struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Type       string               `json:"type,omitempty"`
	Properties ConnectionProperties `json:"properties"`
}

type ConnectionProperties struct {
	AuthType      string                `json:"authType"`
	Category      string                `json:"category"`
	Target        string                `json:"target"`
	IsSharedToAll bool                  `json:"isSharedToAll"`
	IsDefault     bool                  `json:"isDefault,omitempty"`
	Credentials   *ConnectionCredential `json:"credentials,omitempty"`
	Metadata      map[string]string     `json:"metadata"`
}

type ConnectionCredential struct {
	Keys map[string]string `json:"keys"`
}

func (c *ConnectionsClient) connectionsPath() string {
	return arm.ResourceGroupPath(c.subscriptionID, c.resourceGroup) +
		"/providers/Microsoft.CognitiveServices/accounts/" + url.PathEscape(c.account) +
		"/projects/" + url.PathEscape(c.project) + "/connections"
}

// PutCustomKeys creates or replaces a CustomKeys connection holding keys and returns its resource ID.
func (c *ConnectionsClient) PutCustomKeys(ctx context.Context, name string, keys map[string]string) (string, error) {
	if keys == nil {
		keys = map[string]string{}
	}
	body := struct {
		Properties ConnectionProperties `json:"properties"`
	}{
		Properties: ConnectionProperties{
			AuthType:      constants.ConnectionAuthTypeCustomKeys,
			Category:      constants.ConnectionCategoryCustomKeys,
			Target:        constants.ConnectionTargetAny,
			IsSharedToAll: true,
			Credentials:   &ConnectionCredential{Keys: keys},
			Metadata:      map[string]string{},
		},
	}
	var out Connection
	u := c.arm.URL(c.connectionsPath()+"/"+url.PathEscape(name), arm.APIVersion(constants.APIVersionConnections))
	if err := c.arm.Put(ctx, u, body, &out); err != nil {
		return "", fmt.Errorf("put connection %s: %w", name, err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("put connection %s: response has no id", name)
	}
	return out.ID, nil
}

// List returns the project's connections.
func (c *ConnectionsClient) List(ctx context.Context) ([]Connection, error) {
	var all []Connection
	u := c.arm.URL(c.connectionsPath(), arm.APIVersion(constants.APIVersionConnections))
	for u != "" {
		var page struct {
			Value    []Connection `json:"value"`
			NextLink string       `json:"nextLink"`
		}
		if err := c.arm.Get(ctx, u, &page); err != nil {
			return nil, fmt.Errorf("list connections: %w", err)
		}
		all = append(all, page.Value...)
		u = page.NextLink
	}
	return all, nil
}

// ConnectionName is the connection a Logic App workflow's signature is stored under.
func ConnectionName(logicApp, workflow string) string {
	return constants.ConnectionNamePrefix + logicApp + "-" + workflow
}
