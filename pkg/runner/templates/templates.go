// Package templates prints the templates a project can be created from.
package templates

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/launcher/pkg/template"
)

// Templates lists manifests, optionally with their rendered readme.
type Templates struct {
	Manifests []template.Manifest
	Readme    bool
	Width     int
	Out       io.Writer
}

func (t *Templates) Do() error {
	if t.Out == nil {
		t.Out = color.Output
	}
	if len(t.Manifests) == 0 {
		_, err := color.New(color.Faint, color.Italic).Fprintln(t.Out, "no templates available")
		return err
	}
	if t.Readme {
		return t.readmes()
	}

	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold("ID"), bold("NAME"), bold("DESCRIPTION"))
	for _, m := range t.Manifests {
		tbl.AddRow(string(m.ID), m.Name, m.Description)
	}
	_, err := fmt.Fprintln(t.Out, tbl)
	return err
}

func (t *Templates) readmes() error {
	width := t.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	for _, m := range t.Manifests {
		body := strings.TrimSpace(m.Readme)
		if body == "" {
			body = m.Description
		}
		doc := fmt.Sprintf("# %s (`%s`)\n\n%s\n", m.Name, m.ID, body)
		out, err := renderer.Render(doc)
		if err != nil {
			out = doc
		}
		if _, err := fmt.Fprint(t.Out, out); err != nil {
			return err
		}
	}
	return nil
}
