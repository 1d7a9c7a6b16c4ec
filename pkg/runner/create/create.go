// Package create creates a project without the TUI, driving the same
// lifecycle from a ticker and printing the job log as it grows.
package create

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/launcher/pkg/lifecycle"
	"tableflip.dev/launcher/pkg/project"
	"tableflip.dev/launcher/pkg/template"
)

// ErrNotCreated is returned when the job finished without a project.
var ErrNotCreated = errors.New("create: project was not created")

// Controller is the part of the lifecycle the headless loop drives.
type Controller interface {
	Start(ctx context.Context, tpl template.ID, path string) error
	Tick(elapsed time.Duration)
	Phase() lifecycle.Phase
	Logs() []string
	Logf(format string, args ...any)
	SetPresenter(p lifecycle.Presenter)
}

// Create runs one creation job to completion.
type Create struct {
	Controller Controller
	Template   template.ID
	Path       string
	Tick       time.Duration
	Out        io.Writer

	printed int
	created *project.Descriptor
}

// ProjectAdded records the created project.
func (c *Create) ProjectAdded(d project.Descriptor) {
	c.created = &d
}

// NotificationDismissed is unused; the loop stops before the grace period.
func (c *Create) NotificationDismissed() {}

// Do starts the job and ticks until it completes or ctx is cancelled.
// Cancelling ctx stops the wait, not the job.
func (c *Create) Do(ctx context.Context) error {
	if c.Out == nil {
		c.Out = color.Output
	}
	tick := c.Tick
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}
	c.Controller.SetPresenter(c)

	if err := c.Controller.Start(ctx, c.Template, c.Path); err != nil {
		return err
	}
	c.Controller.Logf("Creating new project at: %s", c.Path)
	c.flush()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			c.Controller.Tick(now.Sub(last))
			last = now
			c.flush()
			if c.Controller.Phase() != lifecycle.Running {
				return c.outcome()
			}
		}
	}
}

func (c *Create) flush() {
	lines := c.Controller.Logs()
	if c.printed > len(lines) {
		c.printed = 0
	}
	for _, line := range lines[c.printed:] {
		_, _ = fmt.Fprintln(c.Out, line)
	}
	c.printed = len(lines)
}

func (c *Create) outcome() error {
	if c.created == nil {
		return ErrNotCreated
	}
	green := color.New(color.FgGreen, color.Bold)
	_, _ = green.Fprintf(c.Out, "Created %s (%s)\n", c.created.Label(), c.created.ID)
	return nil
}
