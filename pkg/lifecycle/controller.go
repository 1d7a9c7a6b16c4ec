package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tableflip.dev/launcher/pkg/logging"
	"tableflip.dev/launcher/pkg/project"
	"tableflip.dev/launcher/pkg/template"
)

const (
	// DefaultGrace is how long a finished job's log stays visible.
	DefaultGrace = 5 * time.Second
	// DefaultSaveTimeout bounds how long a tick may wait on the registry.
	DefaultSaveTimeout = 500 * time.Millisecond
)

var (
	// ErrBusy is returned by Start when a job is running or its log is
	// still on screen.
	ErrBusy = errors.New("lifecycle: a project is already being created")
	// ErrInvalidRequest is returned by Start for an empty template or path.
	ErrInvalidRequest = errors.New("lifecycle: template and path are required")
)

// Engine scaffolds a project from a template.
type Engine interface {
	Create(ctx context.Context, tpl template.ID, path string) (project.Descriptor, error)
}

// Registry persists created projects.
type Registry interface {
	Append(ctx context.Context, d project.Descriptor) error
}

// Presenter is notified of changes it has to reflect on screen.
type Presenter interface {
	// ProjectAdded is called after a created project joined the list.
	ProjectAdded(d project.Descriptor)
	// NotificationDismissed is called when the grace period ends.
	NotificationDismissed()
}

// Options configures a Controller.
type Options struct {
	Engine    Engine
	Registry  Registry
	Presenter Presenter
	Logger    *slog.Logger
	Grace     time.Duration
	LogLimit  int
	Projects  []project.Descriptor

	// SaveTimeout caps Registry.Append. Defaults to DefaultSaveTimeout.
	SaveTimeout time.Duration
	// Progress carries lines produced while the job runs, such as the
	// engine's per-file output. Each tick drains it into the log.
	Progress <-chan string
}

// Controller owns the job slot, its log, the dismiss timer and the project
// list. It is not safe for concurrent use; all calls come from the host
// loop.
type Controller struct {
	engine    Engine
	registry  Registry
	presenter Presenter
	logger    *slog.Logger
	grace     time.Duration
	timeout   time.Duration
	progress  <-chan string

	ctx      context.Context
	phase    Phase
	job      *Job
	logs     *LogBuffer
	timer    *DismissTimer
	projects []project.Descriptor
}

// NewController builds an idle controller.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	grace := opts.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}
	timeout := opts.SaveTimeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	projects := make([]project.Descriptor, 0, len(opts.Projects))
	for _, d := range opts.Projects {
		projects = append(projects, d.Clone())
	}
	return &Controller{
		engine:    opts.Engine,
		registry:  opts.Registry,
		presenter: opts.Presenter,
		logger:    logger.With("component", "lifecycle"),
		grace:     grace,
		timeout:   timeout,
		progress:  opts.Progress,
		ctx:       context.Background(),
		phase:     Idle,
		logs:      NewLogBuffer(opts.LogLimit),
		projects:  projects,
	}
}

// SetPresenter replaces the presenter notified on completion and dismissal.
func (c *Controller) SetPresenter(p Presenter) {
	c.presenter = p
}

// Start launches a job that creates a project from tpl at path. It fails
// with ErrBusy unless the controller is Idle, and leaves state untouched in
// that case.
func (c *Controller) Start(ctx context.Context, tpl template.ID, path string) error {
	if c.phase != Idle || c.job != nil {
		c.logger.Warn("rejected project creation", "phase", c.phase.String(), "path", path)
		return fmt.Errorf("%w (phase %s)", ErrBusy, c.phase)
	}
	if strings.TrimSpace(string(tpl)) == "" || strings.TrimSpace(path) == "" {
		return ErrInvalidRequest
	}
	if c.engine == nil {
		return errors.New("lifecycle: no template engine configured")
	}

	c.logs.Clear()
	c.discardProgress()
	c.logger.Info("starting to create new project", "template", string(tpl), "path", path)

	c.ctx = context.WithoutCancel(ctx)
	engine := c.engine
	c.job = NewJob(c.ctx, func(ctx context.Context) Result {
		d, err := engine.Create(ctx, tpl, path)
		if err != nil {
			return Failed(err)
		}
		return Succeeded(d)
	})
	c.phase = Running
	return nil
}

// Tick polls the job and then advances the dismiss timer. A timer armed
// during this tick starts counting on the next one.
func (c *Controller) Tick(elapsed time.Duration) {
	c.drainProgress()
	if c.poll() {
		return
	}
	c.advanceTimer(elapsed)
}

// Logf appends a progress line for the current job. It does nothing while
// Idle.
func (c *Controller) Logf(format string, args ...any) {
	if c.phase == Idle {
		return
	}
	c.logs.Append(fmt.Sprintf(format, args...))
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Logs returns the current job's log lines in order.
func (c *Controller) Logs() []string {
	return c.logs.Lines()
}

// Active reports whether a job is in flight.
func (c *Controller) Active() bool {
	return c.job != nil
}

// Done is closed when the active job's result is ready. It returns nil
// when no job is in flight.
func (c *Controller) Done() <-chan struct{} {
	if c.job == nil {
		return nil
	}
	return c.job.Done()
}

// Remaining returns the time left before the notification is dismissed.
func (c *Controller) Remaining() time.Duration {
	if c.timer == nil {
		return 0
	}
	return c.timer.Remaining()
}

// Projects returns a copy of the project list.
func (c *Controller) Projects() []project.Descriptor {
	out := make([]project.Descriptor, len(c.projects))
	for i, d := range c.projects {
		out[i] = d.Clone()
	}
	return out
}

// ReplaceProjects swaps in a list loaded elsewhere, such as after another
// process changed the registry. It is refused while a job is in flight.
func (c *Controller) ReplaceProjects(list []project.Descriptor) error {
	if c.job != nil {
		return ErrBusy
	}
	projects := make([]project.Descriptor, 0, len(list))
	for _, d := range list {
		projects = append(projects, d.Clone())
	}
	c.projects = projects
	return nil
}

func (c *Controller) advanceTimer(elapsed time.Duration) {
	if c.timer == nil {
		return
	}
	if !c.timer.Tick(elapsed) {
		return
	}
	if c.presenter != nil {
		c.presenter.NotificationDismissed()
	}
	c.timer = nil
	c.logs.Clear()
	c.phase = Idle
}

// drainProgress moves queued progress lines into the log without blocking.
func (c *Controller) drainProgress() {
	if c.progress == nil {
		return
	}
	for {
		select {
		case line, ok := <-c.progress:
			if !ok {
				c.progress = nil
				return
			}
			c.Logf("%s", line)
		default:
			return
		}
	}
}

// discardProgress drops lines left over from an earlier job.
func (c *Controller) discardProgress() {
	if c.progress == nil {
		return
	}
	for {
		select {
		case _, ok := <-c.progress:
			if !ok {
				c.progress = nil
				return
			}
		default:
			return
		}
	}
}
