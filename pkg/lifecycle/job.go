package lifecycle

import (
	"context"
	"fmt"
)

// Job runs one creation function on its own goroutine and holds its result
// until it is taken.
type Job struct {
	results  chan Result
	finished chan struct{}
	consumed bool
}

// NewJob starts fn in the background. fn must not touch controller state;
// its only output is the returned Result.
func NewJob(ctx context.Context, fn func(context.Context) Result) *Job {
	j := &Job{
		results:  make(chan Result, 1),
		finished: make(chan struct{}),
	}
	go func() {
		var res Result
		defer func() {
			if r := recover(); r != nil {
				res = Failed(fmt.Errorf("lifecycle: job panicked: %v", r))
			}
			j.results <- res
			close(j.finished)
		}()
		res = fn(ctx)
	}()
	return j
}

// TryTake returns the job result if it is ready. It never blocks. The
// result is handed out once; every later call returns false.
func (j *Job) TryTake() (Result, bool) {
	if j == nil || j.consumed {
		return Result{}, false
	}
	select {
	case res := <-j.results:
		j.consumed = true
		return res, true
	default:
		return Result{}, false
	}
}

// Done is closed once the result is available.
func (j *Job) Done() <-chan struct{} {
	return j.finished
}
