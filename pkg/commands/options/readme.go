package options

import (
	"github.com/spf13/cobra"
)

// ReadmeOptions
type ReadmeOptions struct {
	Readme bool
	Width  int
}

func AddReadmeArgs(cmd *cobra.Command, o *ReadmeOptions) {
	cmd.Flags().BoolVar(&o.Readme, "readme", false,
		"Render each template's readme.")
	cmd.Flags().IntVar(&o.Width, "width", 80,
		"Wrap rendered readmes at this width.")
}
