package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/plza-save-editor/internal/application"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/spf13/cobra"
)

func newApplyCmd(holder *appHolder) *cobra.Command {
	var (
		changesArg string
		outPath    string
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "apply <save-file>",
		Short: "Apply a change-set to a save file and write the re-encoded result",
		Example: `  plza apply main --changes '{"profile":{"name":"Ash"},"inventory":{"bag_5":99}}' --out main.edited
  plza apply main --changes @changes.json --out main.edited`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := holder.app

			changes, err := readChanges(changesArg)
			if err != nil {
				return err
			}

			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read save file: %w", err)
			}

			var out []byte
			applyChanges := func(ctx context.Context) error {
				var applyErr error
				out, applyErr = app.service.Apply(ctx, application.ApplyCommand{Blob: blob, Changes: changes})
				return applyErr
			}
			if quiet || !isTerminal(cmd.ErrOrStderr()) {
				err = applyChanges(cmd.Context())
			} else {
				err = runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Re-encoding save...", applyChanges)
			}
			if err != nil {
				return err
			}

			if err := writeSaveFile(outPath, out); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(out), outPath)
			return err
		},
	}

	cmd.Flags().StringVar(&changesArg, "changes", "", "change-set as JSON, or @path to read it from a file")
	cmd.Flags().StringVar(&outPath, "out", "", "where to write the edited save")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show progress on a terminal")
	_ = cmd.MarkFlagRequired("changes")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func readChanges(arg string) (domain.ChangeSet, error) {
	raw := []byte(arg)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return domain.ChangeSet{}, fmt.Errorf("read changes file: %w", err)
		}
		raw = b
	}

	var changes domain.ChangeSet
	if err := json.Unmarshal(raw, &changes); err != nil {
		return domain.ChangeSet{}, fmt.Errorf("parse changes: %w", err)
	}
	return changes, nil
}
