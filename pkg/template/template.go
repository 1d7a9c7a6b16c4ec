// Package template scaffolds new projects from template directories.
//
// A template is a directory holding a template.yaml manifest and a files/
// tree. Every file under files/ is rendered with text/template; a trailing
// .tmpl suffix is stripped from the written name.
package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID names a template.
type ID string

const (
	Blank   ID = "blank"
	CLI     ID = "cli"
	Service ID = "service"
)

const (
	manifestFile = "template.yaml"
	filesDir     = "files"
)

var (
	// ErrUnknownTemplate is returned for a template ID that is not loaded.
	ErrUnknownTemplate = errors.New("template: unknown template")
	// ErrTargetExists is returned when the target path already has content.
	ErrTargetExists = errors.New("template: target exists and is not empty")
)

//go:embed all:templates
var builtin embed.FS

// Manifest describes a template.
type Manifest struct {
	ID          ID     `yaml:"-" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Readme      string `yaml:"readme" json:"readme,omitempty"`
}

// Template is a loaded template.
type Template struct {
	Manifest
	files fs.FS
}

// Load reads every template directory directly under root in fsys.
func Load(fsys fs.FS, root string) (map[ID]*Template, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("template: read %s: %w", root, err)
	}
	out := make(map[ID]*Template, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := path.Join(root, entry.Name())
		data, err := fs.ReadFile(fsys, path.Join(dir, manifestFile))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("template: read manifest %s: %w", dir, err)
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("template: parse manifest %s: %w", dir, err)
		}
		m.ID = ID(entry.Name())
		if strings.TrimSpace(m.Name) == "" {
			m.Name = entry.Name()
		}
		files, err := fs.Sub(fsys, path.Join(dir, filesDir))
		if err != nil {
			return nil, fmt.Errorf("template: %s: %w", dir, err)
		}
		out[m.ID] = &Template{Manifest: m, files: files}
	}
	return out, nil
}

// Builtin returns the templates shipped with the launcher.
func Builtin() (map[ID]*Template, error) {
	return Load(builtin, "templates")
}

// LoadDir reads templates from a directory on disk.
func LoadDir(dir string) (map[ID]*Template, error) {
	return Load(os.DirFS(dir), ".")
}

func sortedManifests(templates map[ID]*Template) []Manifest {
	out := make([]Manifest, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.Manifest)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
