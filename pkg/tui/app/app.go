// Package teaui hosts the Bubble Tea program for the launcher TUI.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/launcher/pkg/lifecycle"
	"tableflip.dev/launcher/pkg/logging"
	"tableflip.dev/launcher/pkg/project"
	"tableflip.dev/launcher/pkg/store"
	"tableflip.dev/launcher/pkg/template"
	"tableflip.dev/launcher/pkg/tui/components/panel"
	"tableflip.dev/launcher/pkg/tui/theme"
)

type mode int

const (
	modeList mode = iota
	modeForm
)

// DefaultTick is the host loop cadence.
const DefaultTick = 100 * time.Millisecond

// Source reloads the project list when another process changes it.
type Source interface {
	List(ctx context.Context) ([]project.Descriptor, error)
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Options configures the TUI.
type Options struct {
	Controller *lifecycle.Controller
	Templates  []template.Manifest
	Source     Source
	Tick       time.Duration
	Logger     *slog.Logger
}

type (
	tickMsg           time.Time
	errMsg            struct{ err error }
	projectsLoadedMsg struct{ projects []project.Descriptor }
	watchStartedMsg   struct {
		ch     <-chan store.Event
		cancel context.CancelFunc
		err    error
	}
	watchEventMsg   struct{ event store.Event }
	watchStoppedMsg struct{}
)

// Model contains UI state. It is the lifecycle host: every tick advances
// the controller, and it receives the controller's presenter callbacks.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	ctrl   *lifecycle.Controller
	source Source
	logger *slog.Logger

	tick     time.Duration
	lastTick time.Time

	mode          mode
	projects      list.Model
	templates     []template.Manifest
	templateIndex int
	input         textinput.Model

	overlay     bool
	panel       panel.Model
	status      string
	statusErr   bool
	confirmQuit bool
	pending     []tea.Cmd

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	termWidth  int
	termHeight int
	theme      theme.Theme
}

// New creates the UI model and registers it as the controller's presenter.
func New(opts Options) *Model {
	th := theme.Default()

	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = lifecycle.NewController(lifecycle.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	l := list.New(buildItems(ctrl.Projects()), delegate, 40, 20)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "/path/to/new/project"
	ti.CharLimit = 1024
	ti.Prompt = "> "

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		ctrl:      ctrl,
		source:    opts.Source,
		logger:    logger.With("component", "tui"),
		tick:      tick,
		mode:      modeList,
		projects:  l,
		templates: opts.Templates,
		input:     ti,
		panel:     panel.New(th.Panel),
		theme:     th,
	}
	ctrl.SetPresenter(m)
	return m
}

// Init starts the tick loop and the registry watch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), startWatchCmd(m.ctx, m.source))
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ProjectAdded inserts the new project just before the trailing
// "+ New project" item.
func (m *Model) ProjectAdded(d project.Descriptor) {
	items := m.projects.Items()
	at := len(items) - 1
	if at < 0 {
		at = 0
	}
	if cmd := m.projects.InsertItem(at, projectItem{project: d}); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	m.projects.Select(at)
}

// NotificationDismissed closes the log panel.
func (m *Model) NotificationDismissed() {
	m.overlay = false
	m.panel.Reset()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case tickMsg:
		m.advance(time.Time(msg))
		cmds = append(cmds, m.tickCmd())
	case errMsg:
		m.setError(msg.err.Error())
	case projectsLoadedMsg:
		m.applyLoaded(msg.projects, &cmds)
	case watchStartedMsg:
		if msg.err != nil {
			m.logger.Warn("registry watch unavailable", "error", msg.err)
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadProjects())
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.watchCh = nil
	case tea.KeyPressMsg:
		m.handleKey(msg, &cmds)
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

// advance runs one host tick against the controller.
func (m *Model) advance(now time.Time) {
	elapsed := m.tick
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now
	m.ctrl.Tick(elapsed)
	m.syncPanel()
}

func (m *Model) syncPanel() {
	if !m.overlay {
		return
	}
	var title string
	switch m.ctrl.Phase() {
	case lifecycle.Running:
		title = "Creating new project..."
	case lifecycle.AwaitingDismiss:
		secs := int(math.Ceil(m.ctrl.Remaining().Seconds()))
		title = fmt.Sprintf("Done. Closing in %ds", secs)
	default:
		return
	}
	m.panel.SetContent(title, m.ctrl.Logs())
}

func (m *Model) handleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quit(cmds)
		return
	}
	if m.mode == modeForm {
		m.handleFormKey(msg, cmds)
		return
	}

	switch key {
	case "q":
		// Quitting abandons an in-flight job, so ask once.
		if m.ctrl.Phase() == lifecycle.Running && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus("A project is still being created. Press q again to quit.")
			return
		}
		m.quit(cmds)
		return
	case "enter":
		m.confirmQuit = false
		switch item := m.projects.SelectedItem().(type) {
		case newProjectItem:
			m.openForm(cmds)
		case projectItem:
			m.setStatus(item.project.Path)
		}
		return
	}

	m.confirmQuit = false
	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return
	case "tab":
		m.cycleTemplate(1)
		return
	case "shift+tab":
		m.cycleTemplate(-1)
		return
	case "enter":
		m.submit()
		return
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) openForm(cmds *[]tea.Cmd) {
	if m.ctrl.Phase() != lifecycle.Idle {
		m.setError("A project is already being created.")
		return
	}
	if len(m.templates) == 0 {
		m.setError("No templates available.")
		return
	}
	m.mode = modeForm
	m.input.SetValue("")
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	m.setStatus("")
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.input.Blur()
}

// submit starts the job for the selected template and typed path.
func (m *Model) submit() {
	tpl, ok := m.selectedTemplate()
	if !ok {
		m.setError("No templates available.")
		return
	}
	path := strings.TrimSpace(m.input.Value())
	err := m.ctrl.Start(m.ctx, tpl.ID, path)
	switch {
	case errors.Is(err, lifecycle.ErrBusy):
		m.closeForm()
		m.setError("A project is already being created.")
		return
	case errors.Is(err, lifecycle.ErrInvalidRequest):
		m.setError("Enter a path for the new project.")
		return
	case err != nil:
		m.setError(err.Error())
		return
	}
	m.ctrl.Logf("Creating new project at: %s", path)
	m.closeForm()
	m.overlay = true
	m.syncPanel()
	m.setStatus(fmt.Sprintf("Creating %s from %s", path, tpl.Name))
}

func (m *Model) quit(cmds *[]tea.Cmd) {
	m.stopWatch()
	m.cancel()
	*cmds = append(*cmds, tea.Quit)
}

func (m *Model) applyLoaded(projects []project.Descriptor, cmds *[]tea.Cmd) {
	if err := m.ctrl.ReplaceProjects(projects); err != nil {
		// The controller's list wins while a job is in flight.
		return
	}
	selected := m.projects.Index()
	if cmd := m.projects.SetItems(buildItems(m.ctrl.Projects())); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	if n := len(m.projects.Items()); selected >= n {
		selected = n - 1
	}
	m.projects.Select(selected)
}

func (m *Model) loadProjects() tea.Cmd {
	src := m.source
	ctx := m.ctx
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		projects, err := src.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return projectsLoadedMsg{projects: projects}
	}
}

func startWatchCmd(parent context.Context, src Source) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := src.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// applySizes recalculates component sizes from the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	m.projects.SetSize(m.termWidth, max(m.termHeight/2-2, 3))
	m.input.SetWidth(max(m.termWidth-10, 10))
	m.panel.SetSize(min(m.termWidth-8, 80), max(m.termHeight/2-4, 3))
}

// View renders the UI.
func (m *Model) View() string {
	header := m.theme.Header.Title.Render("Projects") + " " +
		m.theme.Header.Count.Render(fmt.Sprintf("(%d)", len(m.projects.Items())-1))

	sections := []string{header}
	if m.mode == modeForm {
		sections = append(sections, m.renderForm())
	} else {
		sections = append(sections, m.projects.View())
	}
	if m.overlay && !m.panel.Empty() {
		view, _ := m.panel.View()
		sections = append(sections, view)
	}
	sections = append(sections, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) footer() string {
	if m.status != "" {
		if m.statusErr {
			return m.theme.Footer.Error.Render(m.status)
		}
		return m.theme.Footer.Status.Render(m.status)
	}
	return m.theme.Footer.Help.Render("↑/↓ move • enter select • q quit")
}

// Run launches the interactive TUI program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
