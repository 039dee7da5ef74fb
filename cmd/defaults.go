package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/creator/app"
	"github.com/kilianp07/creator/core/creator"
)

func newDefaultsCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "defaults [class]...",
		Short: "Print the default-configuration table",
		RunE: func(cmd *cobra.Command, classes []string) error {
			return withService(cmd, opts, func(svc *app.Service) error {
				d := svc.Defaults()
				if len(classes) == 0 {
					classes = d.Classes()
				}
				table := make(map[string]creator.Properties, len(classes))
				for _, c := range classes {
					if props, ok := d.Get(c); ok {
						table[creator.Canonical(c)] = props
					}
				}
				return encode(cmd.OutOrStdout(), format, table)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "output format: yaml or json")
	return cmd
}
