package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/launcher/pkg/runner/forget"
	"tableflip.dev/launcher/pkg/store"
)

func addForget(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "forget <id|name|path>",
		Short: "Remove a project from the list without touching its files",
		Example: `
launcher forget scratch
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := store.LoadConfig()
			if err != nil {
				return err
			}
			r, err := store.Open(settings)
			if err != nil {
				return err
			}
			f := &forget.Forget{Registry: r, Target: args[0], Out: cmd.OutOrStdout()}
			return f.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
