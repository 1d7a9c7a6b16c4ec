package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/launcher/pkg/commands/options"
	"tableflip.dev/launcher/pkg/runner/templates"
)

func addTemplates(topLevel *cobra.Command) {
	ro := &options.ReadmeOptions{}
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the templates a project can be created from",
		Example: `
launcher templates
launcher templates --readme
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadService(false)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()
			t := &templates.Templates{
				Manifests: s.Templates(),
				Readme:    ro.Readme,
				Width:     ro.Width,
				Out:       cmd.OutOrStdout(),
			}
			return t.Do()
		},
	}

	options.AddReadmeArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}
