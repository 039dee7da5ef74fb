package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/creator/app"
	"github.com/kilianp07/creator/config"
)

// options holds the flags shared by every subcommand.
type options struct {
	cfgPath string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "creator",
		Short:         "Build and inspect objects from declarative descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	cmd.AddCommand(
		newBuildCmd(opts),
		newUsesCmd(opts),
		newClassesCmd(opts),
		newDefaultsCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withService loads the configuration, starts a Service for the duration of
// fn and closes it afterwards.
func withService(cmd *cobra.Command, opts *options, fn func(*app.Service) error) error {
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg, app.WithLogOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			svc.Logger().Errorf("service close: %v", err)
		}
	}()
	return fn(svc)
}
