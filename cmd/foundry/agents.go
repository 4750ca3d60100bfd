package main

import (
	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/provision"
	"github.com/awantoch/foundryflow/tool"
	"github.com/awantoch/foundryflow/utils"
)

// newAgentsCmd creates the 'agents' command group.
func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CmdAgents,
		Short: constants.DescAgents,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   constants.CmdList,
		Short: constants.DescAgentsList,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := agentService(cmd.Context())
			if err != nil {
				fail(2, "Failed to configure agent client: %v", err)
				return
			}
			agents, err := svc.List(cmd.Context())
			if err != nil {
				fail(1, "Failed to list agents: %v", err)
				return
			}
			provision.PrintAgents(utils.UserOutput(), agents)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   constants.CmdDelete + " <name>",
		Short: constants.DescAgentsDel,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := agentService(cmd.Context())
			if err != nil {
				fail(2, "Failed to configure agent client: %v", err)
				return
			}
			n, err := provision.DeleteByName(cmd.Context(), svc, args[0])
			if err != nil {
				fail(1, "Failed to delete agent: %v", err)
				return
			}
			utils.User("Deleted %d agent(s) named %s", n, args[0])
		},
	})
	return cmd
}

// newInvokeCmd creates the 'invoke' subcommand.
func newInvokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdInvoke + " <agent> <message>",
		Short: constants.DescInvoke,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := agentService(cmd.Context())
			if err != nil {
				fail(2, "Failed to configure agent client: %v", err)
				return
			}
			agents, err := svc.List(cmd.Context())
			if err != nil {
				fail(1, "Failed to list agents: %v", err)
				return
			}
			a, ok := agent.Find(agents, args[0])
			if !ok {
				utils.Error("Agent %s not found", args[0])
				exit(1)
				return
			}
			if err := invokeAgent(cmd.Context(), a, args[1], tool.Resources{}); err != nil {
				fail(1, "Failed to invoke agent: %v", err)
			}
		},
	}
}

// newConnectionsCmd creates the 'connections' subcommand.
func newConnectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdConns,
		Short: constants.DescConns,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			client, err := connectionsClient(cmd.Context())
			if err != nil {
				fail(2, "Failed to configure connections client: %v", err)
				return
			}
			conns, err := client.List(cmd.Context())
			if err != nil {
				fail(1, "Failed to list connections: %v", err)
				return
			}
			for _, c := range conns {
				utils.User("Connection ID: %s, Name: %s, Category: %s, Target: %s, Default: %t",
					c.ID, c.Name, c.Properties.Category, c.Properties.Target, c.Properties.IsDefault)
			}
		},
	}
}
