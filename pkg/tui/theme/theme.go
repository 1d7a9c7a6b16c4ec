package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Footer FooterTheme
	Panel  PanelTheme
	Form   FormTheme
}

// HeaderTheme styles the title above the project list.
type HeaderTheme struct {
	Title lipgloss.Style
	Count lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles the framed log panel.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FormTheme styles the new-project form.
type FormTheme struct {
	Frame    lipgloss.Style
	Label    lipgloss.Style
	Option   lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Count: lipgloss.NewStyle().Foreground(muted),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Label:    lipgloss.NewStyle().Bold(true),
			Option:   lipgloss.NewStyle().Foreground(muted),
			Selected: lipgloss.NewStyle().Foreground(accent).Bold(true).Reverse(true),
			Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
	}
}
