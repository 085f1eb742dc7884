package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"stockdesk/collections"
	"stockdesk/config"
	"stockdesk/services"
)

// newExportCommand returns the "export" command, which writes one stored
// document to an xlsx or pdf file without starting the server.
func newExportCommand(app *pocketbase.PocketBase, cfg *config.Config) *cobra.Command {
	var owner, format, out string

	cmd := &cobra.Command{
		Use:   "export <document-id>",
		Short: "Export a document to an xlsx or pdf file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := services.ParseExportFormat(format)
			if err != nil {
				return err
			}

			collections.Setup(app)
			doc, content, err := exportDocument(app, services.NewRecordStore(app), cfg.DefaultProfile(), owner, args[0], f)
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.ReplaceAll(services.ExportFileName(doc, string(f)), "/", "-")
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(content))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "email of the document owner")
	cmd.Flags().StringVar(&format, "format", string(services.FormatPDF), "output format: xlsx or pdf")
	cmd.Flags().StringVar(&out, "out", "", "output file (default <kind>-<number>.<format>)")
	cmd.MarkFlagRequired("owner")

	return cmd
}

// exportDocument renders the document id owned by the user with ownerEmail.
func exportDocument(app core.App, store services.DocumentStore, defaults services.Profile, ownerEmail, id string, f services.ExportFormat) (*services.Document, []byte, error) {
	user, err := app.FindAuthRecordByEmail(collections.Users, strings.ToLower(strings.TrimSpace(ownerEmail)))
	if err != nil {
		return nil, nil, fmt.Errorf("unknown owner %q", ownerEmail)
	}

	doc, err := store.Get(user.Id, id)
	if err != nil {
		return nil, nil, fmt.Errorf("document %s: %w", id, err)
	}

	profile, err := services.GetProfile(app, user.Id, defaults)
	if err != nil {
		return nil, nil, err
	}

	content, err := services.Render(services.BuildExportData(doc, profile), f)
	if err != nil {
		return nil, nil, fmt.Errorf("render %s: %w", f, err)
	}
	return doc, content, nil
}
