package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
)

func init() {
	homedir.DisableCache = true
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".launcher.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LAUNCHER_CONFIG_PATH", dir)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LAUNCHER_CONFIG_PATH", t.TempDir())

	s, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Grace != 5*time.Second {
		t.Fatalf("expected 5s grace, got %s", s.Grace)
	}
	if s.Tick != 100*time.Millisecond {
		t.Fatalf("expected 100ms tick, got %s", s.Tick)
	}
	if !s.Git {
		t.Fatalf("expected git enabled by default")
	}
	if s.LogLimit != 0 {
		t.Fatalf("expected unbounded log, got %d", s.LogLimit)
	}
	want := filepath.Join(os.Getenv("HOME"), ".launcher.db")
	if s.BasePath() != want {
		t.Fatalf("expected %s, got %s", want, s.BasePath())
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	writeConfig(t, "path: /srv/launcher\ngrace: 2s\nlog_limit: 50\ngit: false\n")

	s, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Path != "/srv/launcher" || s.Grace != 2*time.Second || s.LogLimit != 50 || s.Git {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	writeConfig(t, "grace: 2s\n")
	t.Setenv("LAUNCHER_GRACE", "750ms")

	s, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Grace != 750*time.Millisecond {
		t.Fatalf("expected env override, got %s", s.Grace)
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	writeConfig(t, "grace: soon\n")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for bad duration")
	}
}

func TestLoadConfigRejectsZeroTick(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	writeConfig(t, "tick: 0s\n")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for zero tick")
	}
}
