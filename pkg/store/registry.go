package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/launcher/pkg/project"
)

const (
	projectsDir = "projects"
	lockFile    = ".lock"
)

// Registry persists the project list with one JSON file per project.
type Registry struct {
	d        *diskv.Diskv
	basePath string
	lock     *flock.Flock
}

// Open creates a Registry backed by diskv using the provided config.
func Open(cfg Config) (*Registry, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(filepath.Join(basePath, projectsDir), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Registry{
		d: diskv.New(diskv.Options{
			BasePath:     filepath.Join(basePath, projectsDir),
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
		lock:     flock.New(filepath.Join(basePath, lockFile)),
	}, nil
}

// BasePath returns the directory holding the registry.
func (r *Registry) BasePath() string {
	return r.basePath
}

// List returns every stored project, oldest first. Unreadable entries are
// skipped.
func (r *Registry) List(ctx context.Context) ([]project.Descriptor, error) {
	var out []project.Descriptor
	for key := range r.d.Keys(ctx.Done()) {
		d, err := r.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %v\n", key, err)
			continue
		}
		out = append(out, d)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	project.SortByCreated(out)
	return out, nil
}

// Append stores a single project. Entries written by other processes are
// left alone.
func (r *Registry) Append(ctx context.Context, d project.Descriptor) error {
	unlock, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	_, err = r.write(d)
	return err
}

// Remove deletes the project with id.
func (r *Registry) Remove(ctx context.Context, id string) error {
	unlock, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	if !r.d.Has(id) {
		return fmt.Errorf("store: project %q not found", id)
	}
	return r.d.Erase(id)
}

func (r *Registry) acquire(ctx context.Context) (func(), error) {
	locked, err := r.lock.TryLockContext(ctx, 25*time.Millisecond)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, fmt.Errorf("store: registry is locked by another process: %w", err)
	case err != nil:
		return nil, fmt.Errorf("store: lock registry: %w", err)
	case !locked:
		return nil, errors.New("store: registry is locked by another process")
	}
	return func() {
		if err := r.lock.Unlock(); err != nil {
			fmt.Fprintf(os.Stderr, "store: unlock registry: %v\n", err)
		}
	}, nil
}

func (r *Registry) read(key string) (project.Descriptor, error) {
	val, err := r.d.Read(key)
	if err != nil {
		return project.Descriptor{}, err
	}
	var d project.Descriptor
	if err := json.Unmarshal(val, &d); err != nil {
		return project.Descriptor{}, err
	}
	if d.ID == "" {
		d.ID = key
	}
	return d, nil
}

func (r *Registry) write(d project.Descriptor) (string, error) {
	if strings.TrimSpace(d.ID) == "" {
		d.ID = uuid.NewString()
	}
	if strings.ContainsAny(d.ID, `/\`) {
		return "", fmt.Errorf("store: invalid project id %q", d.ID)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("store: encode %s: %w", d.ID, err)
	}
	if err := r.d.Write(d.ID, data); err != nil {
		return "", fmt.Errorf("store: write %s: %w", d.ID, err)
	}
	return d.ID, nil
}
