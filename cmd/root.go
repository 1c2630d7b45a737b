package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/plza-save-editor/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

// appHolder carries the wired app into a command's RunE. It is only set while
// that RunE executes.
type appHolder struct {
	app *app
}

// withApp loads the config, wires the app for the duration of run and
// releases it afterwards, whether run failed or not.
func withApp(holder *appHolder, configPath *string, run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.New(), *configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		holder.app, err = wireApp(cfg)
		if err != nil {
			return err
		}
		defer func() { holder.app = nil }()

		runErr := run(cmd, args)
		if closeErr := holder.app.Close(cmd.Context()); closeErr != nil {
			return errors.Join(runErr, closeErr)
		}
		return runErr
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	holder := &appHolder{}

	rootCmd := &cobra.Command{
		Use:           "plza",
		Short:         "PLZA save editor: parse, edit and re-encode save files",
		Long:          "plza serves the save editor HTTP API and offers offline commands to inspect and patch PLZA save files from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/plza/config.toml)")

	wired := []*cobra.Command{
		newServeCmd(holder),
		newInspectCmd(holder),
		newApplyCmd(holder),
	}
	for _, sub := range wired {
		sub.RunE = withApp(holder, &configPath, sub.RunE)
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(wired...)

	return rootCmd
}
