package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"tableflip.dev/launcher/pkg/lifecycle"
	"tableflip.dev/launcher/pkg/project"
	"tableflip.dev/launcher/pkg/store"
)

func runJob(t *testing.T, ctrl *lifecycle.Controller, target string) time.Duration {
	t.Helper()
	if err := ctrl.Start(context.Background(), "blank", target); err != nil {
		t.Fatalf("start: %v", err)
	}
	select {
	case <-ctrl.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job")
	}
	start := time.Now()
	ctrl.Tick(10 * time.Millisecond)
	return time.Since(start)
}

func testSettings(t *testing.T) *store.Settings {
	t.Helper()
	return &store.Settings{
		Path:     t.TempDir(),
		Grace:    time.Second,
		Tick:     10 * time.Millisecond,
		LogLevel: "debug",
	}
}

func TestNewRequiresSettings(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("expected error without settings")
	}
}

func TestControllerSeededFromRegistry(t *testing.T) {
	svc, err := New(testSettings(t), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer svc.Close()

	seed := project.New("/srv/seed", "blank")
	if err := svc.Registry.Append(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctrl, err := svc.Controller(context.Background(), nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	if got := ctrl.Projects(); len(got) != 1 || got[0].ID != seed.ID {
		t.Fatalf("expected seeded project, got %v", got)
	}
	if len(svc.Templates()) == 0 {
		t.Fatalf("expected built-in templates")
	}
}

func TestEndToEndCreatePersists(t *testing.T) {
	settings := testSettings(t)
	svc, err := New(settings, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer svc.Close()

	ctrl, err := svc.Controller(context.Background(), nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	target := filepath.Join(t.TempDir(), "p1")
	if err := ctrl.Start(context.Background(), "blank", target); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-ctrl.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job")
	}
	ctrl.Tick(settings.Tick)
	if ctrl.Phase() != lifecycle.AwaitingDismiss {
		t.Fatalf("expected awaiting-dismiss, got %s (%q)", ctrl.Phase(), ctrl.Logs())
	}
	if ctrl.Remaining() != settings.Grace {
		t.Fatalf("expected grace from settings, got %s", ctrl.Remaining())
	}
	logs := ctrl.Logs()
	if len(logs) < 2 || !strings.HasPrefix(logs[0], "Created ") || !strings.HasPrefix(logs[len(logs)-1], "Successfully created") {
		t.Fatalf("expected engine progress before the outcome, got %q", logs)
	}

	stored, err := svc.Registry.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].Path != target {
		t.Fatalf("expected %s persisted, got %v", target, stored)
	}
}

func TestLogFileIsUsed(t *testing.T) {
	settings := testSettings(t)
	settings.LogFile = filepath.Join(t.TempDir(), "launcher.log")
	svc, err := New(settings, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCreateKeepsProjectsAddedElsewhere(t *testing.T) {
	settings := testSettings(t)
	svc, err := New(settings, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer svc.Close()

	ctrl, err := svc.Controller(context.Background(), nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	other, err := store.Open(settings)
	if err != nil {
		t.Fatalf("open second registry: %v", err)
	}
	theirs := project.New("/tmp/theirs", "blank")
	if err := other.Append(context.Background(), theirs); err != nil {
		t.Fatalf("their append: %v", err)
	}

	mine := filepath.Join(t.TempDir(), "mine")
	runJob(t, ctrl, mine)

	stored, err := svc.Registry.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	paths := map[string]bool{}
	for _, d := range stored {
		paths[d.Path] = true
	}
	if len(stored) != 2 || !paths["/tmp/theirs"] || !paths[mine] {
		t.Fatalf("expected both projects stored, got %v", stored)
	}
}

func TestTickIsBoundedWhileRegistryIsLocked(t *testing.T) {
	settings := testSettings(t)
	svc, err := New(settings, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer svc.Close()

	ctrl, err := svc.Controller(context.Background(), nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	held := flock.New(filepath.Join(settings.BasePath(), ".lock"))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("take lock: %v %v", locked, err)
	}
	defer func() { _ = held.Unlock() }()

	took := runJob(t, ctrl, filepath.Join(t.TempDir(), "p1"))
	if took > 2*time.Second {
		t.Fatalf("tick took %s while the registry was locked", took)
	}
	if ctrl.Phase() != lifecycle.AwaitingDismiss {
		t.Fatalf("expected awaiting-dismiss, got %s", ctrl.Phase())
	}
	found := false
	for _, line := range ctrl.Logs() {
		if strings.HasPrefix(line, "Failed to save project list") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a save failure line, got %q", ctrl.Logs())
	}
}
