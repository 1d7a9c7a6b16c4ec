package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/launcher/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
launcher ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command) error {
	s, err := loadService(true)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	i := ui.UI{Service: s}
	return i.Do(cmd.Context())
}
