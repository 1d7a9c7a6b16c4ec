// Package list prints the projects in the registry.
package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/launcher/pkg/project"
)

// Source lists stored projects.
type Source interface {
	List(ctx context.Context) ([]project.Descriptor, error)
}

// List renders the registry as a table or as JSON.
type List struct {
	Source Source
	JSON   bool
	Out    io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Out == nil {
		l.Out = color.Output
	}
	projects, err := l.Source.List(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return l.json(projects)
	}
	return l.table(projects)
}

func (l *List) json(projects []project.Descriptor) error {
	if projects == nil {
		projects = []project.Descriptor{}
	}
	b, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.Out, string(b))
	return err
}

func (l *List) table(projects []project.Descriptor) error {
	if len(projects) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, err := f.Fprintln(l.Out, "no projects yet")
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("NAME"), bold("TEMPLATE"), bold("CREATED"), bold("PATH"))
	for _, p := range projects {
		tbl.AddRow(p.Label(), p.Template, faint(p.Created.Local().Format(time.DateTime)), p.Path)
	}
	_, err := fmt.Fprintln(l.Out, tbl)
	return err
}
