package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/creator/app"
)

func newUsesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "uses <class> [mixin]",
		Short: "List the mixins a class uses, or check one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(svc *app.Service) error {
				out := cmd.OutOrStdout()
				if len(args) == 2 {
					ok, err := svc.Uses(args[0], args[1])
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, ok)
					return err
				}
				set, err := svc.Inspect(args[0])
				if err != nil {
					return err
				}
				for _, m := range set.Sorted() {
					if _, err := fmt.Fprintln(out, m); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
