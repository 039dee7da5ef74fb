package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/creator/app"
)

func newClassesCmd(opts *options) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List registered classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, opts, func(svc *app.Service) error {
				out := cmd.OutOrStdout()
				for _, name := range svc.Classes() {
					line := name
					if long {
						cls, err := svc.Registry.LoadClass(name)
						if err != nil {
							return err
						}
						var tags []string
						if cls.IsAbstract() {
							tags = append(tags, "abstract")
						}
						if cls.IsSingleton() {
							tags = append(tags, "singleton")
						}
						if cls.Parent != "" {
							tags = append(tags, "parent="+cls.Parent)
						}
						line = strings.TrimSpace(name + " " + strings.Join(tags, " "))
					}
					if _, err := fmt.Fprintln(out, line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show class kind and parent")
	return cmd
}
