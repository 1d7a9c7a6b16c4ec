package lifecycle

import (
	"context"
	"fmt"

	"tableflip.dev/launcher/pkg/project"
)

// poll takes the job result if it is ready and applies it. It reports
// whether a result was consumed.
func (c *Controller) poll() bool {
	if c.job == nil {
		return false
	}
	res, ok := c.job.TryTake()
	if !ok {
		return false
	}

	// The job sends its progress before its result, so everything it
	// reported is queued by now.
	c.drainProgress()
	if res.OK() {
		c.succeed(res.Project)
	} else {
		c.fail(res.Err)
	}

	c.timer = NewDismissTimer(c.grace)
	c.phase = AwaitingDismiss
	return true
}

func (c *Controller) succeed(d project.Descriptor) {
	c.logs.Append(fmt.Sprintf("Successfully created new project at: %s", d.Path))
	c.logger.Info("successfully created new project", "path", d.Path, "template", d.Template, "id", d.ID)

	c.projects = append(c.projects, d.Clone())
	c.persist(d)

	c.job = nil
	if c.presenter != nil {
		c.presenter.ProjectAdded(d.Clone())
	}
}

func (c *Controller) fail(err error) {
	c.logs.Append(fmt.Sprintf("Failed to create new project: %v", err))
	c.logger.Error("failed to create new project", "error", err)

	c.job = nil
}

// persist records d in the registry. Only the new project is written so
// entries added by other processes survive. A failure, including running
// past the save timeout, is reported but does not turn the job into a
// failure.
func (c *Controller) persist(d project.Descriptor) {
	if c.registry == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()
	if err := c.registry.Append(ctx, d.Clone()); err != nil {
		c.logger.Error("failed to save project list", "error", err)
		c.logs.Append(fmt.Sprintf("Failed to save project list: %v", err))
	}
}
