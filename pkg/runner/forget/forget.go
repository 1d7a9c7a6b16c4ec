// Package forget drops a project from the registry. Files on disk are
// left alone.
package forget

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/launcher/pkg/project"
)

// Registry is the part of the store forget needs.
type Registry interface {
	List(ctx context.Context) ([]project.Descriptor, error)
	Remove(ctx context.Context, id string) error
}

// Forget removes the project whose ID, name or path equals Target.
type Forget struct {
	Registry Registry
	Target   string
	Out      io.Writer
}

func (f *Forget) Do(ctx context.Context) error {
	if f.Out == nil {
		f.Out = color.Output
	}
	projects, err := f.Registry.List(ctx)
	if err != nil {
		return err
	}
	var matches []project.Descriptor
	for _, p := range projects {
		if p.ID == f.Target || p.Name == f.Target || p.Path == f.Target {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("forget: no project matches %q", f.Target)
	case 1:
	default:
		return fmt.Errorf("forget: %d projects match %q, use the id", len(matches), f.Target)
	}
	p := matches[0]
	if err := f.Registry.Remove(ctx, p.ID); err != nil {
		return err
	}
	_, err = color.New(color.Faint).Fprintf(f.Out, "Forgot %s (%s)\n", p.Label(), p.Path)
	return err
}
