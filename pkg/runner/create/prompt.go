package create

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/launcher/pkg/template"
)

// ErrNoTemplate is returned when no template was given and none can be
// asked for.
var ErrNoTemplate = errors.New("create: a template is required")

// Interactive reports whether stdin is a terminal we can prompt on.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptTemplate asks the user to pick one of templates.
func PromptTemplate(templates []template.Manifest, in io.Reader, out io.Writer) (template.ID, error) {
	if len(templates) == 0 {
		return "", ErrNoTemplate
	}
	tpls := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Description | green }}",
		Inactive: "   {{ .Name }} {{ .Description | cyan }}",
		Selected: "Template: {{ .Name | bold }}",
	}
	searcher := func(input string, index int) bool {
		name := strings.ToLower(templates[index].Name + " " + string(templates[index].ID))
		return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Template",
		Items:     templates,
		Templates: tpls,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(in),
		Stdout:    nopWriteCloser{out},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return templates[i].ID, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
