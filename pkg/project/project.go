// Package project describes projects known to the launcher.
package project

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Descriptor is the record produced when a project is created from a
// template and stored in the registry.
type Descriptor struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Template string            `json:"template"`
	Created  time.Time         `json:"created"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// New returns a descriptor for a project at path created from tpl.
func New(path, tpl string) Descriptor {
	clean := filepath.Clean(path)
	return Descriptor{
		ID:       uuid.NewString(),
		Name:     filepath.Base(clean),
		Path:     clean,
		Template: tpl,
		Created:  time.Now().UTC(),
		Metadata: make(map[string]string),
	}
}

// Label is the display name for the descriptor.
func (d Descriptor) Label() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	return d.Path
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	cp := d
	if d.Metadata != nil {
		cp.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			cp.Metadata[k] = v
		}
	}
	return cp
}

// SortByCreated orders descriptors oldest first, breaking ties by ID.
func SortByCreated(list []Descriptor) {
	sort.SliceStable(list, func(i, j int) bool {
		lt, rt := list[i].Created, list[j].Created
		if lt.Equal(rt) {
			return list[i].ID < list[j].ID
		}
		return lt.Before(rt)
	})
}
