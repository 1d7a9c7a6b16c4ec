package commands

import (
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/launcher/pkg/app"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "launcher",
		Short: base.Wrap80("Create projects from templates and keep track of them."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd)
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addNew(topLevel)
	addList(topLevel)
	addTemplates(topLevel)
	addForget(topLevel)
	addVersion(topLevel)
}

// loadService opens the shared setup. Diagnostics without a log file go
// to stderr for CLI commands and are discarded for the TUI.
func loadService(quiet bool) (*app.Service, error) {
	if quiet {
		return app.Load(nil)
	}
	return app.Load(os.Stderr)
}
