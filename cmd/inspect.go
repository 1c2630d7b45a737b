package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	summaryadapter "github.com/bnema/plza-save-editor/internal/adapters/render/summary"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/spf13/cobra"
)

type summaryJSON struct {
	Profile    domain.ProfileSummary                 `json:"profile_summary"`
	Inventory  map[int]domain.InventorySummaryEntry  `json:"inventory_summary"`
	Collection map[int]domain.CollectionSummaryEntry `json:"collection_summary"`
}

func newInspectCmd(holder *appHolder) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <save-file>",
		Short: "Show the editable fields of a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := holder.app

			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read save file: %w", err)
			}

			summary, err := app.service.Inspect(cmd.Context(), blob)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summaryJSON{
					Profile:    summary.Profile,
					Inventory:  summary.Inventory,
					Collection: summary.Collection,
				})
			}

			rendered, err := app.summaryRenderer(summary, summaryadapter.RenderOptions{
				Catalog: app.catalog,
				Title:   filepath.Base(args[0]),
			})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
