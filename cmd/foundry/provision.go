package main

import (
	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/mcp"
	"github.com/awantoch/foundryflow/provision"
	"github.com/awantoch/foundryflow/tool"
	"github.com/awantoch/foundryflow/utils"
)

// newLogicAppCmd creates the 'logicapp' subcommand.
func newLogicAppCmd() *cobra.Command {
	var name, instructions, message, format string
	var export bool
	cmd := &cobra.Command{
		Use:   constants.CmdLogicApp,
		Short: constants.DescLogicApp,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			p, err := newLogicAppProvisioner(ctx, export, format)
			if err != nil {
				fail(2, "Failed to configure Logic App client: %v", err)
				return
			}
			conns, err := connectionsClient(ctx)
			if err != nil {
				fail(2, "Failed to configure connections client: %v", err)
				return
			}
			p.Connections = conns

			tools, err := p.Tools(ctx)
			if err != nil {
				fail(1, "Failed to build Logic App tools: %v", err)
				return
			}
			defs, resources := tool.Collect(tools...)
			def, err := newDefinition(name, instructions, defs)
			if err != nil {
				fail(2, "Failed to build agent definition: %v", err)
				return
			}
			a, err := upsertAgent(cmd, def)
			if err != nil {
				fail(1, "Failed to provision agent: %v", err)
				return
			}
			if !wantsInvoke(cmd, message) {
				return
			}
			if err := invokeAgent(ctx, *a, message, resources); err != nil {
				fail(1, "Failed to invoke agent: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&name, "agent-name", constants.DefaultLogicAppAgentName, "Agent name")
	cmd.Flags().StringVar(&instructions, "instructions", constants.DefaultLogicAppAgentInst, "Agent instructions")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message to send once the agent is provisioned")
	cmd.Flags().BoolVar(&export, "export", false, "Write each synthesized document to the configured blob store")
	cmd.Flags().StringVarP(&format, "format", "f", constants.FormatJSON, "Export format: json or yaml")
	return cmd
}

// newOpenAPICmd creates the 'openapi' subcommand.
func newOpenAPICmd() *cobra.Command {
	var specPath, serverURL, name, instructions, toolName, toolDesc, message string
	cmd := &cobra.Command{
		Use:   constants.CmdOpenAPI,
		Short: constants.DescOpenAPI,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if specPath == "" {
				specPath = cfg.OpenAPI.SpecPath
			}
			if specPath == "" {
				specPath = constants.DefaultOpenAPISpecPath
			}
			if serverURL == "" {
				serverURL = cfg.OpenAPI.ServerURL
			}
			t, err := provision.OpenAPIFileTool(specPath, serverURL, toolName, toolDesc)
			if err != nil {
				fail(2, "Failed to load OpenAPI spec: %v", err)
				return
			}
			defs, resources := tool.Collect(t)
			def, err := newDefinition(name, instructions, defs)
			if err != nil {
				fail(2, "Failed to build agent definition: %v", err)
				return
			}
			a, err := upsertAgent(cmd, def)
			if err != nil {
				fail(1, "Failed to provision agent: %v", err)
				return
			}
			if !wantsInvoke(cmd, message) {
				return
			}
			if err := invokeAgent(cmd.Context(), *a, message, resources); err != nil {
				fail(1, "Failed to invoke agent: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&specPath, "spec", "", "Path to the OpenAPI document (JSON or YAML)")
	cmd.Flags().StringVar(&serverURL, "server-url", "", "Override the document's server URL")
	cmd.Flags().StringVar(&name, "agent-name", constants.DefaultOpenAPIAgentName, "Agent name")
	cmd.Flags().StringVar(&instructions, "instructions", constants.DefaultOpenAPIAgentInst, "Agent instructions")
	cmd.Flags().StringVar(&toolName, "tool-name", constants.DefaultOpenAPIToolName, "OpenAPI tool name")
	cmd.Flags().StringVar(&toolDesc, "tool-description", constants.DefaultOpenAPIToolDesc, "OpenAPI tool description")
	cmd.Flags().StringVarP(&message, "message", "m", constants.DefaultOpenAPIMessage, "Message to send; empty skips the invocation")
	return cmd
}

// newMCPCmd creates the 'mcp' subcommand.
func newMCPCmd() *cobra.Command {
	var serverURL, label, approval, name, instructions, message string
	var discover bool
	var headers map[string]string
	cmd := &cobra.Command{
		Use:   constants.CmdMCP,
		Short: constants.DescMCP,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if serverURL == "" {
				serverURL = cfg.MCP.ServerURL
			}
			if label == "" {
				label = cfg.MCP.ServerLabel
			}
			if err := utils.ValidateOneOf("approval", approval, []string{tool.ApprovalNever, tool.ApprovalAlways}); err != nil {
				exit(2)
				return
			}
			opts := provision.MCPOptions{ServerURL: serverURL, Label: label, Approval: approval, Headers: headers}
			if discover {
				opts.Discover = mcp.Discover
			}
			t, err := provision.MCPTool(ctx, opts)
			if err != nil {
				fail(2, "Failed to build MCP tool: %v", err)
				return
			}
			defs, resources := tool.Collect(t)
			def, err := newDefinition(name, instructions, defs)
			if err != nil {
				fail(2, "Failed to build agent definition: %v", err)
				return
			}
			a, err := upsertAgent(cmd, def)
			if err != nil {
				fail(1, "Failed to provision agent: %v", err)
				return
			}
			if !wantsInvoke(cmd, message) {
				return
			}
			if err := invokeAgent(ctx, *a, message, resources); err != nil {
				fail(1, "Failed to invoke agent: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&serverURL, "server-url", "", "MCP server URL")
	cmd.Flags().StringVar(&label, "label", "", "MCP server label")
	cmd.Flags().StringVar(&approval, "approval", tool.ApprovalNever, "Tool approval mode: never or always")
	cmd.Flags().StringToStringVar(&headers, "header", nil, "Header sent to the MCP server as key=value; repeatable")
	cmd.Flags().BoolVar(&discover, "discover", false, "List the server's tools and allow exactly those")
	cmd.Flags().StringVar(&name, "agent-name", constants.DefaultMCPAgentName, "Agent name")
	cmd.Flags().StringVar(&instructions, "instructions", constants.DefaultMCPAgentInst, "Agent instructions")
	cmd.Flags().StringVarP(&message, "message", "m", constants.DefaultMCPMessage, "Message to send; empty skips the invocation")
	return cmd
}
