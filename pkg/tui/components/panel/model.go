// Package panel renders the framed log panel shown while a project is
// being created.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/launcher/pkg/tui/theme"
)

// Model renders a title and a tail of wrapped log lines.
type Model struct {
	title      string
	lines      []string
	width      int
	maxLines   int
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

// New returns a panel model with sensible defaults.
func New(th theme.PanelTheme) Model {
	return Model{
		width:      60,
		maxLines:   12,
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetSize bounds the text width and the number of body lines shown.
func (m *Model) SetSize(width, maxLines int) {
	if width > 10 {
		m.width = width
	}
	if maxLines > 0 {
		m.maxLines = maxLines
	}
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// Empty reports whether there is nothing to render.
func (m Model) Empty() bool {
	return m.title == "" && len(m.lines) == 0
}

// View returns the rendered panel string and its total height in lines.
// When the log is longer than the panel, the newest lines are kept.
func (m Model) View() (string, int) {
	var body []string
	for _, line := range m.lines {
		wrapped := wordwrap.String(line, m.width)
		body = append(body, strings.Split(wrapped, "\n")...)
	}
	if len(body) > m.maxLines {
		body = body[len(body)-m.maxLines:]
	}

	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
		if len(body) > 0 {
			content = append(content, "")
		}
	}
	for _, line := range body {
		content = append(content, m.bodyStyle.Render(line))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	height := strings.Count(view, "\n") + 1
	return view, height
}
