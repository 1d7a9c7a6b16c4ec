package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/launcher/pkg/commands/options"
	"tableflip.dev/launcher/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the projects created so far",
		Example: `
launcher list
launcher list --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer func() { _ = s.Close() }()
			l := &list.List{Source: s.Registry, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
