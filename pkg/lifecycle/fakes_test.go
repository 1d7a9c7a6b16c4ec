package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/launcher/pkg/project"
	"tableflip.dev/launcher/pkg/template"
)

// gatedEngine blocks each Create until release is called.
type gatedEngine struct {
	mu      sync.Mutex
	calls   int
	gate    chan struct{}
	err     error
	panicky bool
}

func newGatedEngine() *gatedEngine {
	return &gatedEngine{gate: make(chan struct{})}
}

// immediateEngine returns without waiting.
func immediateEngine(err error) *gatedEngine {
	e := newGatedEngine()
	e.err = err
	close(e.gate)
	return e
}

func (e *gatedEngine) Create(ctx context.Context, tpl template.ID, path string) (project.Descriptor, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	<-e.gate
	if e.panicky {
		panic("template exploded")
	}
	if e.err != nil {
		return project.Descriptor{}, e.err
	}
	return project.New(path, string(tpl)), nil
}

func (e *gatedEngine) release() {
	close(e.gate)
}

func (e *gatedEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// memoryRegistry records appended projects. With stuck set it behaves like
// a registry whose lock never frees: Append waits for ctx to end.
type memoryRegistry struct {
	appended []project.Descriptor
	err      error
	stuck    bool
}

func (r *memoryRegistry) Append(ctx context.Context, d project.Descriptor) error {
	if r.stuck {
		<-ctx.Done()
		return ctx.Err()
	}
	r.appended = append(r.appended, d)
	return r.err
}

type recordingPresenter struct {
	added     []project.Descriptor
	dismissed int
}

func (p *recordingPresenter) ProjectAdded(d project.Descriptor) {
	p.added = append(p.added, d)
}

func (p *recordingPresenter) NotificationDismissed() {
	p.dismissed++
}

var errDiskFull = errors.New("disk full")

// waitForJob blocks until the controller's active job has a result ready.
func waitForJob(t *testing.T, c *Controller) {
	t.Helper()
	done := c.Done()
	if done == nil {
		t.Fatalf("expected an active job")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}
}
