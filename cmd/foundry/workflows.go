package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/logicapp"
	"github.com/awantoch/foundryflow/utils"
)

type workflowSummary struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind,omitempty"`
	Health   string   `json:"health,omitempty"`
	Triggers []string `json:"triggers"`
	HTTP     string   `json:"http_trigger,omitempty"`
}

func summarize(wf logicapp.Workflow) workflowSummary {
	trigger, _ := wf.HTTPTrigger()
	return workflowSummary{
		Name:     wf.Name,
		Kind:     wf.Kind,
		Health:   wf.HealthState(),
		Triggers: wf.TriggerNames(),
		HTTP:     trigger,
	}
}

// newWorkflowsCmd creates the 'workflows' subcommand.
func newWorkflowsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   constants.CmdWorkflows,
		Short: constants.DescWorkflows,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			client, err := logicAppClient(cmd.Context())
			if err != nil {
				fail(2, "Failed to configure Logic App client: %v", err)
				return
			}
			workflows, err := client.ListWorkflows(cmd.Context(), cfg.LogicApp.Name)
			if err != nil {
				fail(1, "Failed to list workflows: %v", err)
				return
			}
			summaries := make([]workflowSummary, 0, len(workflows))
			for _, wf := range workflows {
				summaries = append(summaries, summarize(wf))
			}
			if asJSON {
				if err := utils.WriteJSONIndent(utils.UserOutput(), summaries); err != nil {
					fail(1, "Failed to write workflows: %v", err)
				}
				return
			}
			for _, s := range summaries {
				trigger := s.HTTP
				if trigger == "" {
					trigger = "-"
				}
				utils.User("%s\t%s\t%s\thttp=%s", s.Name, s.Health, strings.Join(s.Triggers, ","), trigger)
			}
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print workflows as JSON")
	return cmd
}
