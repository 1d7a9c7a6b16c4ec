package lifecycle

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/launcher/pkg/project"
)

func TestJobTryTakeDoesNotBlock(t *testing.T) {
	gate := make(chan struct{})
	j := NewJob(context.Background(), func(context.Context) Result {
		<-gate
		return Succeeded(project.Descriptor{Path: "/tmp/x"})
	})

	start := time.Now()
	if _, ok := j.TryTake(); ok {
		t.Fatalf("expected no result before job finishes")
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatalf("TryTake blocked")
	}

	close(gate)
	<-j.Done()

	res, ok := j.TryTake()
	if !ok {
		t.Fatalf("expected result after job finished")
	}
	if !res.OK() || res.Project.Path != "/tmp/x" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := j.TryTake(); ok {
		t.Fatalf("result handed out twice")
	}
}

func TestJobRecoversPanic(t *testing.T) {
	j := NewJob(context.Background(), func(context.Context) Result {
		panic("boom")
	})
	<-j.Done()
	res, ok := j.TryTake()
	if !ok {
		t.Fatalf("expected result from panicking job")
	}
	if res.OK() {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(res.Err.Error(), "boom") {
		t.Fatalf("expected panic value in error, got %v", res.Err)
	}
}

func TestNilJobTryTake(t *testing.T) {
	var j *Job
	if _, ok := j.TryTake(); ok {
		t.Fatalf("nil job returned a result")
	}
}

func TestFailedWithNilError(t *testing.T) {
	if Failed(nil).OK() {
		t.Fatalf("Failed(nil) should not be OK")
	}
}
