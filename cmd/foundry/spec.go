package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awantoch/foundryflow/blob"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/openapi"
	"github.com/awantoch/foundryflow/provision"
	"github.com/awantoch/foundryflow/utils"
)

// encodeDocument renders doc in format and returns the bytes, their mime type and file extension.
func encodeDocument(doc *openapi.Document, format string) ([]byte, string, string, error) {
	switch format {
	case constants.FormatJSON:
		data, err := doc.JSON()
		return data, constants.ContentTypeJSON, ".json", err
	case constants.FormatYAML:
		data, err := doc.YAML()
		return data, constants.ContentTypeYAML, ".yaml", err
	default:
		return nil, "", "", fmt.Errorf("unsupported format %q", format)
	}
}

// newExporter writes every synthesized document to the configured blob store.
func newExporter(ctx context.Context, format string) (provision.ExportFunc, error) {
	store, err := blob.New(ctx, cfg.Blob)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, workflow string, doc *openapi.Document) error {
		data, mime, ext, err := encodeDocument(doc, format)
		if err != nil {
			return err
		}
		url, err := store.Put(ctx, data, mime, "openapi/"+workflow+ext)
		if err != nil {
			return err
		}
		utils.Info("Exported OpenAPI spec of %s to %s", workflow, url)
		return nil
	}, nil
}

// newLogicAppProvisioner wires the Logic App and connection clients together.
func newLogicAppProvisioner(ctx context.Context, export bool, format string) (*provision.LogicApp, error) {
	workflows, err := logicAppClient(ctx)
	if err != nil {
		return nil, err
	}
	p := &provision.LogicApp{Workflows: workflows, Site: cfg.LogicApp.Name}
	if export {
		if p.Export, err = newExporter(ctx, format); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// newSpecCmd creates the 'spec' subcommand.
func newSpecCmd() *cobra.Command {
	var serverURL, format string
	var export bool
	cmd := &cobra.Command{
		Use:   constants.CmdSpec + " <workflow>",
		Short: constants.DescSpec,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := utils.ValidateOneOf("format", format, []string{constants.FormatJSON, constants.FormatYAML}); err != nil {
				exit(2)
				return
			}
			p, err := newLogicAppProvisioner(cmd.Context(), export, format)
			if err != nil {
				fail(2, "Failed to configure Logic App client: %v", err)
				return
			}
			spec, err := p.Spec(cmd.Context(), args[0], serverURL)
			if err != nil {
				fail(1, "Failed to synthesize spec: %v", err)
				return
			}
			data, _, _, err := encodeDocument(spec.Document, format)
			if err != nil {
				fail(1, "Failed to encode spec: %v", err)
				return
			}
			utils.User("%s", data)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server-url", "", "Server URL to put in the document instead of the trigger's callback URL")
	cmd.Flags().StringVarP(&format, "format", "f", constants.FormatJSON, "Output format: json or yaml")
	cmd.Flags().BoolVar(&export, "export", false, "Also write the document to the configured blob store")
	return cmd
}
