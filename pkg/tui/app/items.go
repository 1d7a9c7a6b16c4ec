package teaui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/list"

	"tableflip.dev/launcher/pkg/project"
)

// projectItem is a known project in the list.
type projectItem struct {
	project project.Descriptor
}

func (i projectItem) Title() string { return i.project.Label() }
func (i projectItem) Description() string {
	return fmt.Sprintf("%s · %s", i.project.Template, i.project.Path)
}
func (i projectItem) FilterValue() string { return i.project.Label() }

// newProjectItem is the trailing control that opens the new-project form.
// It is always the last item in the list.
type newProjectItem struct{}

func (newProjectItem) Title() string       { return "+ New project" }
func (newProjectItem) Description() string { return "Create a project from a template" }
func (newProjectItem) FilterValue() string { return "" }

func buildItems(projects []project.Descriptor) []list.Item {
	items := make([]list.Item, 0, len(projects)+1)
	for _, d := range projects {
		items = append(items, projectItem{project: d})
	}
	return append(items, newProjectItem{})
}
