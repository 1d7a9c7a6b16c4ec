package teaui

import (
	"strings"

	"tableflip.dev/launcher/pkg/template"
)

// renderForm draws the new-project form: a template selector and a path
// input.
func (m *Model) renderForm() string {
	th := m.theme.Form
	var b strings.Builder
	b.WriteString(th.Label.Render("Template"))
	b.WriteString("\n")
	for i, tpl := range m.templates {
		label := " " + tpl.Name + " "
		if i == m.templateIndex {
			b.WriteString(th.Selected.Render(label))
		} else {
			b.WriteString(th.Option.Render(label))
		}
		b.WriteString(" ")
	}
	if sel, ok := m.selectedTemplate(); ok && sel.Description != "" {
		b.WriteString("\n")
		b.WriteString(th.Hint.Render(sel.Description))
	}
	b.WriteString("\n\n")
	b.WriteString(th.Label.Render("Path"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(th.Hint.Render("tab switch template • enter create • esc cancel"))
	return th.Frame.Render(b.String())
}

func (m *Model) selectedTemplate() (template.Manifest, bool) {
	if len(m.templates) == 0 {
		return template.Manifest{}, false
	}
	return m.templates[m.templateIndex], true
}

func (m *Model) cycleTemplate(delta int) {
	n := len(m.templates)
	if n == 0 {
		return
	}
	m.templateIndex = ((m.templateIndex+delta)%n + n) % n
}
