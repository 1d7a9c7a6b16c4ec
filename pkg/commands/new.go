package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/launcher/pkg/commands/options"
	"tableflip.dev/launcher/pkg/runner/create"
	"tableflip.dev/launcher/pkg/template"
)

func addNew(topLevel *cobra.Command) {
	o := &options.InteractiveOptions{}
	cmd := &cobra.Command{
		Use:   "new [template] <path>",
		Short: "Create a new project from a template",
		Example: `
launcher new cli ~/src/tool
launcher new ~/src/scratch
launcher new -i ~/src/scratch
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadService(false)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			path := args[len(args)-1]
			var tpl template.ID
			switch {
			case len(args) == 2:
				tpl = template.ID(args[0])
			case o.Interactive || create.Interactive():
				tpl, err = create.PromptTemplate(s.Templates(), cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			default:
				tpl = template.Blank
			}
			if _, ok := s.Engine.Lookup(tpl); !ok {
				return fmt.Errorf("%w: %q", template.ErrUnknownTemplate, tpl)
			}

			ctrl, err := s.Controller(cmd.Context(), nil)
			if err != nil {
				return err
			}
			c := &create.Create{
				Controller: ctrl,
				Template:   tpl,
				Path:       path,
				Tick:       s.Settings.Tick,
				Out:        color.Output,
			}
			return c.Do(cmd.Context())
		},
	}

	options.InteractiveArgs(cmd, o)
	topLevel.AddCommand(cmd)
}
