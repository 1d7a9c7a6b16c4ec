package templates

import (
	"bytes"
	"strings"
	"testing"

	"tableflip.dev/launcher/pkg/template"
)

func manifests() []template.Manifest {
	return []template.Manifest{
		{ID: template.Blank, Name: "Blank", Description: "An empty project."},
		{ID: template.CLI, Name: "CLI", Description: "A command line tool.", Readme: "Builds a cobra app."},
	}
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	if err := (&Templates{Manifests: manifests(), Out: &out}).Do(); err != nil {
		t.Fatalf("do: %v", err)
	}
	for _, want := range []string{"blank", "cli", "A command line tool."} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in %q", want, out.String())
		}
	}
}

func TestReadme(t *testing.T) {
	var out bytes.Buffer
	if err := (&Templates{Manifests: manifests(), Readme: true, Width: 60, Out: &out}).Do(); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(out.String(), "cobra") {
		t.Fatalf("expected readme text, got %q", out.String())
	}
}

func TestEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := (&Templates{Out: &out}).Do(); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(out.String(), "no templates") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
