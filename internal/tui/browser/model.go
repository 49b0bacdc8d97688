package browser

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-launcher/pkg/navigator"
	"github.com/mattsolo1/grove-launcher/pkg/runner"
	"github.com/mattsolo1/grove-launcher/pkg/service"
)

// Model is the interactive project browser.
type Model struct {
	service *service.Service
	changes <-chan struct{}
	ctx     context.Context

	projects   []string
	projectIdx int
	state      *navigator.State
	cursor     int
	// cursors remembers the cursor of each level so ascending restores it.
	cursors []int

	run      *runner.Handle
	runLabel string
	progress runner.Status

	message string
	isError bool

	help     help.Model
	width    int
	height   int
	quitting bool
}

// New creates the browser. changes, when non-nil, signals that the projects
// file was modified on disk.
func New(ctx context.Context, svc *service.Service, changes <-chan struct{}) Model {
	m := Model{
		service: svc,
		changes: changes,
		ctx:     ctx,
		help:    help.New(),
	}
	m.loadProjects("")
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// loadProjects refreshes the project list and selects prefer when present,
// otherwise the first project.
func (m *Model) loadProjects(prefer string) {
	m.projects = m.service.Projects().Names()
	m.projectIdx = 0
	for i, name := range m.projects {
		if name == prefer {
			m.projectIdx = i
		}
	}
	m.selectProject()
}

func (m *Model) selectProject() {
	m.state = nil
	m.cursor = 0
	m.cursors = nil
	if len(m.projects) == 0 {
		return
	}
	state, err := m.service.Navigator().SelectProject(m.projects[m.projectIdx])
	if err != nil {
		m.setError(err)
		return
	}
	m.state = state
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

func (m *Model) setInfo(msg string) {
	m.message = msg
	m.isError = false
}

func (m Model) running() bool {
	return m.run != nil
}

func (m Model) selectedLabel() (string, bool) {
	if m.state == nil {
		return "", false
	}
	entries := m.state.Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return "", false
	}
	return entries[m.cursor].Label, true
}
