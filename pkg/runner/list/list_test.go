package list

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/launcher/pkg/project"
)

type fakeSource struct {
	projects []project.Descriptor
	err      error
}

func (f fakeSource) List(context.Context) ([]project.Descriptor, error) {
	return f.projects, f.err
}

func sample() []project.Descriptor {
	return []project.Descriptor{
		{ID: "a", Name: "alpha", Path: "/src/alpha", Template: "cli", Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: "b", Name: "beta", Path: "/src/beta", Template: "blank", Created: time.Date(2024, 2, 2, 3, 4, 5, 0, time.UTC)},
	}
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	l := &List{Source: fakeSource{projects: sample()}, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	for _, want := range []string{"NAME", "alpha", "/src/beta", "blank"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in %q", want, out.String())
		}
	}
}

func TestTableEmpty(t *testing.T) {
	var out bytes.Buffer
	l := &List{Source: fakeSource{}, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(out.String(), "no projects yet") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	l := &List{Source: fakeSource{projects: sample()}, JSON: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	var got []project.Descriptor
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].Path != "/src/beta" {
		t.Fatalf("unexpected projects %+v", got)
	}
}

func TestJSONEmptyIsArray(t *testing.T) {
	var out bytes.Buffer
	l := &List{Source: fakeSource{}, JSON: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", out.String())
	}
}

func TestSourceError(t *testing.T) {
	boom := errors.New("boom")
	l := &List{Source: fakeSource{err: boom}, Out: &bytes.Buffer{}}
	if err := l.Do(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
