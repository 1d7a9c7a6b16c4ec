package lifecycle

import (
	"errors"

	"tableflip.dev/launcher/pkg/project"
)

// Result is the outcome of a creation job. Err is nil on success, in which
// case Project holds the created project.
type Result struct {
	Project project.Descriptor
	Err     error
}

// Succeeded wraps a created project.
func Succeeded(d project.Descriptor) Result {
	return Result{Project: d}
}

// Failed wraps a job failure. A nil err still yields a failure.
func Failed(err error) Result {
	if err == nil {
		err = errors.New("lifecycle: job failed")
	}
	return Result{Err: err}
}

// OK reports whether the job succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
