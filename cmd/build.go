package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/creator/app"
)

type buildResult struct {
	Object string `json:"object" yaml:"object"`
	Type   string `json:"type" yaml:"type"`
}

func newBuildCmd(opts *options) *cobra.Command {
	var (
		rawArgs []string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "build <object>...",
		Short: "Construct configured objects or classes",
		Long: "Construct each named object. A name is looked up in the objects section\n" +
			"of the configuration first, then used as a class identifier.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, names []string) error {
			extra := make([]any, 0, len(rawArgs))
			for _, a := range rawArgs {
				v, err := parseArg(a)
				if err != nil {
					return err
				}
				extra = append(extra, v)
			}
			return withService(cmd, opts, func(svc *app.Service) error {
				results := make([]buildResult, 0, len(names))
				for _, name := range names {
					v, err := svc.Build(name, extra...)
					if err != nil {
						return fmt.Errorf("build %s: %w", name, err)
					}
					results = append(results, buildResult{Object: name, Type: fmt.Sprintf("%T", v)})
				}
				return encode(cmd.OutOrStdout(), format, results)
			})
		},
	}
	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "extra construction argument, parsed as YAML (repeatable)")
	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "output format: yaml or json")
	return cmd
}
