package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/storage"
	"github.com/awantoch/foundryflow/utils"
)

// newHistoryCmd creates the 'history' subcommand.
func newHistoryCmd() *cobra.Command {
	var agentName string
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   constants.CmdHistory,
		Short: constants.DescHistory,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.New(cfg.History)
			if err != nil {
				fail(2, "Failed to open provisioning history: %v", err)
				return
			}
			defer store.Close()
			records, err := store.ListRecords(cmd.Context(), agentName, limit)
			if err != nil {
				fail(1, "Failed to read provisioning history: %v", err)
				return
			}
			if asJSON {
				if records == nil {
					records = []*storage.Record{}
				}
				if err := utils.WriteJSONIndent(utils.UserOutput(), records); err != nil {
					fail(1, "Failed to write history: %v", err)
				}
				return
			}
			for _, r := range records {
				utils.User("%s  %-9s  %s (%s) api=%s model=%s tools=%s",
					r.CreatedAt.Format(time.RFC3339), r.Action, r.Agent, r.AgentID, r.API, r.Model, strings.Join(r.Tools, ","))
			}
		},
	}
	cmd.Flags().StringVar(&agentName, "agent", "", "Only show records of this agent")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records; 0 shows all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}
