// Package provision strings the clients together into the flows the CLI runs.
package provision

import (
	"context"
	"fmt"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/foundry"
	"github.com/awantoch/foundryflow/logicapp"
	"github.com/awantoch/foundryflow/openapi"
	"github.com/awantoch/foundryflow/tool"
	"github.com/awantoch/foundryflow/utils"
)

// WorkflowSource reads workflow metadata from a Logic App site.
type WorkflowSource interface {
	ListWorkflows(ctx context.Context, site string) ([]logicapp.Workflow, error)
	TriggerSchema(ctx context.Context, site, workflow, trigger string) (*openapi.TriggerDefinition, error)
	CallbackURL(ctx context.Context, site, workflow, trigger string) (string, error)
}

// ConnectionRegistrar stores a trigger signature as a project connection.
type ConnectionRegistrar interface {
	PutCustomKeys(ctx context.Context, name string, keys map[string]string) (string, error)
}

// ExportFunc receives each synthesized document once its server URL is final.
type ExportFunc func(ctx context.Context, workflow string, doc *openapi.Document) error

// LogicApp turns the HTTP-triggered workflows of one site into OpenAPI tools.
type LogicApp struct {
	Workflows   WorkflowSource
	Connections ConnectionRegistrar
	Site        string
	// Export is optional.
	Export ExportFunc
}

// WorkflowSpec is the synthesized document of one workflow and where it will be served.
type WorkflowSpec struct {
	Workflow string
	Trigger  string
	Document *openapi.Document
	Callback logicapp.Callback
}

// Tools returns one OpenAPI tool per workflow with an Http trigger, in listing order.
// Workflows without one are skipped.
func (p *LogicApp) Tools(ctx context.Context) ([]tool.Tool, error) {
	workflows, err := p.Workflows.ListWorkflows(ctx, p.Site)
	if err != nil {
		return nil, err
	}
	if len(workflows) == 0 {
		return nil, fmt.Errorf("no workflows found in %s", p.Site)
	}

	var tools []tool.Tool
	for _, wf := range workflows {
		trigger, ok := wf.HTTPTrigger()
		if !ok {
			utils.Info("No HTTP trigger found in workflow %s, skipping", wf.Name)
			continue
		}
		utils.Info("Trigger: %s", trigger)

		spec, err := p.resolve(ctx, wf.Name, trigger, "")
		if err != nil {
			return nil, err
		}
		t, err := p.register(ctx, spec)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// Spec synthesizes the document of a single workflow. With an empty serverURL the trigger's
// callback URL is resolved and used.
func (p *LogicApp) Spec(ctx context.Context, workflow, serverURL string) (*WorkflowSpec, error) {
	workflows, err := p.Workflows.ListWorkflows(ctx, p.Site)
	if err != nil {
		return nil, err
	}
	for _, wf := range workflows {
		if wf.Name != workflow {
			continue
		}
		trigger, ok := wf.HTTPTrigger()
		if !ok {
			return nil, fmt.Errorf("workflow %s has no HTTP trigger", workflow)
		}
		return p.resolve(ctx, workflow, trigger, serverURL)
	}
	return nil, fmt.Errorf("workflow %s not found in %s", workflow, p.Site)
}

func (p *LogicApp) resolve(ctx context.Context, workflow, trigger, serverURL string) (*WorkflowSpec, error) {
	def, err := p.Workflows.TriggerSchema(ctx, p.Site, workflow, trigger)
	if err != nil {
		return nil, err
	}
	utils.Debug("Trigger %s of workflow %s accepts %v", trigger, workflow, def.Properties.Names())
	doc := openapi.Synthesize(workflow, def.Properties, serverURL)
	spec := &WorkflowSpec{Workflow: workflow, Trigger: trigger, Document: doc}

	if serverURL == "" {
		raw, err := p.Workflows.CallbackURL(ctx, p.Site, workflow, trigger)
		if err != nil {
			return nil, err
		}
		utils.Info("Found Callback URL for workflow '%s'", workflow)
		cb, err := logicapp.ParseCallbackURL(raw)
		if err != nil {
			return nil, fmt.Errorf("workflow %s: %w", workflow, err)
		}
		if !cb.HasSignature {
			utils.Warn("Callback URL of workflow %s has no %s parameter; the connection key will be empty", workflow, constants.CallbackSignatureParam)
		}
		doc.SetServerURL(cb.BaseURL())
		spec.Callback = cb
	}

	if p.Export != nil {
		if err := p.Export(ctx, workflow, doc); err != nil {
			return nil, fmt.Errorf("export spec of %s: %w", workflow, err)
		}
	}
	return spec, nil
}

func (p *LogicApp) register(ctx context.Context, spec *WorkflowSpec) (*tool.OpenAPI, error) {
	name := foundry.ConnectionName(p.Site, spec.Workflow)
	connID, err := p.Connections.PutCustomKeys(ctx, name, map[string]string{
		constants.CallbackSignatureParam: spec.Callback.Signature,
	})
	if err != nil {
		return nil, err
	}
	utils.Debug("Registered connection %s (%s)", name, connID)

	m, err := spec.Document.Map()
	if err != nil {
		return nil, err
	}
	return tool.NewOpenAPI(
		tool.SanitizeName(spec.Workflow),
		spec.Workflow+" OpenAPI tool",
		m,
		tool.ConnectionAuth(connID),
	), nil
}
