package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/event"
	"github.com/awantoch/foundryflow/foundry"
	"github.com/awantoch/foundryflow/logicapp"
	"github.com/awantoch/foundryflow/provision"
	"github.com/awantoch/foundryflow/storage"
	"github.com/awantoch/foundryflow/templater"
	"github.com/awantoch/foundryflow/tool"
	"github.com/awantoch/foundryflow/utils"
)

var (
	// httpClientFor returns a client authenticated for scope.
	httpClientFor = azureHTTPClient
	armBaseURL    = constants.ARMBaseURL
)

func azureHTTPClient(ctx context.Context, scope string) (*http.Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("no Azure credential for %s", scope)
	}
	return provider.Client(ctx, scope), nil
}

func requireAll(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := config.Require(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func managementClient(ctx context.Context) (*arm.Client, error) {
	hc, err := httpClientFor(ctx, constants.ScopeManagement)
	if err != nil {
		return nil, err
	}
	return arm.NewClient(hc, armBaseURL), nil
}

func logicAppClient(ctx context.Context) (*logicapp.Client, error) {
	la := cfg.LogicApp
	if err := requireAll(
		constants.EnvLogicAppSubscriptionID, la.SubscriptionID,
		constants.EnvLogicAppResourceGroup, la.ResourceGroup,
		constants.EnvLogicAppName, la.Name,
	); err != nil {
		return nil, err
	}
	c, err := managementClient(ctx)
	if err != nil {
		return nil, err
	}
	return logicapp.NewClient(c, la.SubscriptionID, la.ResourceGroup), nil
}

func connectionsClient(ctx context.Context) (*foundry.ConnectionsClient, error) {
	f := cfg.Foundry
	if err := requireAll(
		constants.EnvFoundrySubscriptionID, f.SubscriptionID,
		constants.EnvFoundryResourceGroup, f.ResourceGroup,
		constants.EnvFoundryName, f.AccountName,
		constants.EnvFoundryProjectName, f.ProjectName,
	); err != nil {
		return nil, err
	}
	c, err := managementClient(ctx)
	if err != nil {
		return nil, err
	}
	return foundry.NewConnectionsClient(c, f.SubscriptionID, f.ResourceGroup, f.AccountName, f.ProjectName), nil
}

func projectClient(ctx context.Context) (*arm.Client, error) {
	if err := config.Require(constants.EnvFoundryEndpoint, cfg.Foundry.Endpoint); err != nil {
		return nil, err
	}
	hc, err := httpClientFor(ctx, constants.ScopeAIFoundry)
	if err != nil {
		return nil, err
	}
	return arm.NewClient(hc, cfg.Foundry.Endpoint), nil
}

func assistantsClient(ctx context.Context) (*foundry.AgentsClient, error) {
	c, err := projectClient(ctx)
	if err != nil {
		return nil, err
	}
	return foundry.NewAgentsClient(c, cfg.Foundry.APIVersion), nil
}

// agentService picks the agent API the config selects.
func agentService(ctx context.Context) (agent.Service, error) {
	if cfg.Foundry.AgentsAPI == constants.AgentsAPIV2 {
		c, err := projectClient(ctx)
		if err != nil {
			return nil, err
		}
		return foundry.NewAgentsV2Client(c, cfg.Foundry.APIVersion), nil
	}
	return assistantsClient(ctx)
}

// upsertStrategy is update-in-place on v1 and delete-then-create on v2 unless
// --delete-before-create says otherwise.
func upsertStrategy(cmd *cobra.Command) agent.Strategy {
	recreate := cfg.Foundry.AgentsAPI == constants.AgentsAPIV2
	if f := cmd.Flags().Lookup("delete-before-create"); f != nil && f.Changed {
		recreate = deleteBeforeCreate
	}
	if recreate {
		return agent.DeleteThenCreate
	}
	return agent.UpdateInPlace
}

// agentModel is the model agents are bound to; the gateway prefix only applies to named agents.
func agentModel() (string, error) {
	if err := config.Require(constants.EnvDeploymentName, cfg.Foundry.DeploymentName); err != nil {
		return "", err
	}
	if cfg.Foundry.AgentsAPI == constants.AgentsAPIV2 {
		return cfg.Foundry.Model(), nil
	}
	return cfg.Foundry.DeploymentName, nil
}

func newDefinition(name, instructions string, tools []tool.Definition) (agent.Definition, error) {
	model, err := agentModel()
	if err != nil {
		return agent.Definition{}, err
	}
	temp := constants.DefaultTemperature
	return agent.Definition{
		Name:         name,
		Instructions: instructions,
		Model:        model,
		Tools:        tools,
		Temperature:  &temp,
	}, nil
}

func upsertAgent(cmd *cobra.Command, def agent.Definition) (*agent.Agent, error) {
	ctx := cmd.Context()
	svc, err := agentService(ctx)
	if err != nil {
		return nil, err
	}
	u := agent.NewUpserter(svc, upsertStrategy(cmd))
	u.OnList = func(agents []agent.Agent) {
		utils.User("--- Agents ---")
		provision.PrintAgents(utils.UserOutput(), agents)
	}
	a, action, err := u.Upsert(ctx, def)
	if err != nil {
		return nil, err
	}
	metrics.RecordUpsert(string(action))
	utils.User("Agent %s %s (ID: %s)", a.Name, action, a.ID)
	recordProvision(ctx, newRecord(*a, action, def))
	return a, nil
}

func newRecord(a agent.Agent, action agent.Action, def agent.Definition) *storage.Record {
	tools := make([]string, 0, len(def.Tools))
	for _, t := range def.Tools {
		tools = append(tools, t.Label())
	}
	return &storage.Record{
		ID:        uuid.New(),
		Agent:     a.Name,
		AgentID:   a.ID,
		Action:    string(action),
		API:       cfg.Foundry.AgentsAPI,
		Model:     def.Model,
		Tools:     tools,
		CreatedAt: time.Now().UTC(),
	}
}

// recordProvision keeps rec in the history store and announces it on the event bus.
// Failures are logged; the agent itself is already provisioned.
func recordProvision(ctx context.Context, rec *storage.Record) {
	store, err := storage.New(cfg.History)
	if err != nil {
		utils.Warn("Failed to open provisioning history: %v", err)
	} else {
		if err := store.SaveRecord(ctx, rec); err != nil {
			utils.Warn("Failed to record provisioning of %s: %v", rec.Agent, err)
		}
		store.Close()
	}

	bus, err := event.NewEventBusFromConfig(cfg.Event)
	if err != nil {
		utils.Warn("Failed to connect event bus: %v", err)
		return
	}
	defer bus.Close()
	if err := bus.Publish(event.TopicAgentProvisioned, rec); err != nil {
		utils.Warn("Failed to publish %s: %v", event.TopicAgentProvisioned, err)
	}
}

// wantsInvoke reports whether message should be sent after provisioning. On v2 the
// command's default message is skipped; one given with --message still fails in invokeAgent.
func wantsInvoke(cmd *cobra.Command, message string) bool {
	if message == "" {
		return false
	}
	if cfg.Foundry.AgentsAPI != constants.AgentsAPIV1 && !cmd.Flags().Changed("message") {
		utils.Warn("Skipping invocation: invoking agents requires --api %s", constants.AgentsAPIV1)
		return false
	}
	return true
}

// invokeAgent sends message to a and streams the reply to the user output.
func invokeAgent(ctx context.Context, a agent.Agent, message string, resources tool.Resources) error {
	if cfg.Foundry.AgentsAPI != constants.AgentsAPIV1 {
		return fmt.Errorf("invoking agents requires --api %s", constants.AgentsAPIV1)
	}
	client, err := assistantsClient(ctx)
	if err != nil {
		return err
	}
	extra, err := templater.Render(constants.DefaultAdditionalInst, map[string]any{})
	if err != nil {
		return err
	}
	utils.User("# User: %s", message)
	return provision.Invoke(ctx, client, provision.Invocation{
		Agent:                  a,
		Message:                message,
		AdditionalInstructions: extra,
		Resources:              resources,
	}, utils.UserOutput())
}
