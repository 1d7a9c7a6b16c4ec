package template

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"tableflip.dev/launcher/pkg/logging"
	"tableflip.dev/launcher/pkg/project"
)

// Options configures an Engine.
type Options struct {
	// Dir holds extra templates; they override built-ins with the same ID.
	Dir string
	// Git initialises a repository with an initial commit in new projects.
	Git bool
	// Author signs the initial commit.
	Author string
	Email  string
	// Progress, if set, receives one line per written file. It is called
	// from the goroutine running Create.
	Progress func(line string)
	Logger   *slog.Logger
}

// Engine creates projects from loaded templates.
type Engine struct {
	templates map[ID]*Template
	opts      Options
	logger    *slog.Logger
}

// NewEngine loads the built-in templates plus any found in opts.Dir.
func NewEngine(opts Options) (*Engine, error) {
	templates, err := Builtin()
	if err != nil {
		return nil, err
	}
	if opts.Dir != "" {
		extra, err := LoadDir(opts.Dir)
		if err != nil {
			return nil, err
		}
		for id, t := range extra {
			templates[id] = t
		}
	}
	if opts.Author == "" {
		opts.Author = "launcher"
	}
	if opts.Email == "" {
		opts.Email = "launcher@localhost"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{templates: templates, opts: opts, logger: logger.With("component", "template")}, nil
}

// Templates returns the manifests of every loaded template, sorted by ID.
func (e *Engine) Templates() []Manifest {
	return sortedManifests(e.templates)
}

// Lookup returns the manifest for id.
func (e *Engine) Lookup(id ID) (Manifest, bool) {
	t, ok := e.templates[id]
	if !ok {
		return Manifest{}, false
	}
	return t.Manifest, true
}

type renderData struct {
	Name     string
	Module   string
	Template string
}

// Create renders template id into path. The target must be missing or an
// empty directory.
func (e *Engine) Create(ctx context.Context, id ID, target string) (project.Descriptor, error) {
	tpl, ok := e.templates[id]
	if !ok {
		return project.Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return project.Descriptor{}, fmt.Errorf("template: resolve %s: %w", target, err)
	}
	existed, err := ensureEmpty(abs)
	if err != nil {
		return project.Descriptor{}, err
	}

	d := project.New(abs, string(id))
	data := renderData{Name: d.Name, Module: moduleName(d.Name), Template: string(id)}

	written := 0
	err = fs.WalkDir(tpl.files, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		dest := filepath.Join(abs, filepath.FromSlash(p))
		if entry.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		dest = strings.TrimSuffix(dest, ".tmpl")
		body, err := fs.ReadFile(tpl.files, p)
		if err != nil {
			return err
		}
		rendered, err := render(p, body, data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, rendered, 0o644); err != nil {
			return err
		}
		written++
		e.progress(fmt.Sprintf("Created %s", strings.TrimSuffix(p, ".tmpl")))
		return nil
	})
	if err != nil {
		e.cleanup(abs, existed)
		return project.Descriptor{}, fmt.Errorf("template: scaffold %s: %w", id, err)
	}
	d.Metadata["files"] = strconv.Itoa(written)

	if e.opts.Git {
		hash, err := e.initRepo(abs)
		if err != nil {
			e.cleanup(abs, existed)
			return project.Descriptor{}, fmt.Errorf("template: git init %s: %w", abs, err)
		}
		d.Metadata["commit"] = hash
		e.progress(fmt.Sprintf("Initialised git repository at %s", hash))
	}

	e.logger.Debug("scaffolded project", "template", string(id), "path", abs, "files", written)
	return d, nil
}

// cleanup removes what a failed Create wrote so the path can be reused. A
// directory that was there before is emptied but kept.
func (e *Engine) cleanup(dir string, existed bool) {
	if !existed {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove partial project", "path", dir, "error", err)
		}
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		e.logger.Warn("failed to clean partial project", "path", dir, "error", err)
		return
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			e.logger.Warn("failed to clean partial project", "path", dir, "error", err)
		}
	}
}

func (e *Engine) progress(line string) {
	if e.opts.Progress != nil {
		e.opts.Progress(line)
	}
}

func (e *Engine) initRepo(dir string) (string, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", err
	}
	hash, err := wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  e.opts.Author,
			Email: e.opts.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func render(name string, body []byte, data renderData) ([]byte, error) {
	t, err := texttemplate.New(name).Option("missingkey=error").Parse(string(body))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ensureEmpty reports whether dir already exists. It fails unless dir is
// missing or an empty directory.
func ensureEmpty(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("template: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return true, fmt.Errorf("%w: %s", ErrTargetExists, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return true, fmt.Errorf("template: read %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return true, fmt.Errorf("%w: %s", ErrTargetExists, dir)
	}
	return true, nil
}

// moduleName turns a project name into something usable as a Go module path.
func moduleName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "project"
	}
	return b.String()
}
