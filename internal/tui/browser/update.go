package browser

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-launcher/pkg/models"
	"github.com/mattsolo1/grove-launcher/pkg/navigator"
	"github.com/mattsolo1/grove-launcher/pkg/runner"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case runStatusMsg:
		m.progress = msg.status
		m.setInfo(msg.status.Description)
		return m, waitForRun(m.run)

	case runFinishedMsg:
		m.run = nil
		switch msg.outcome.State {
		case runner.Succeeded:
			m.setInfo(fmt.Sprintf("%s: all actions executed successfully", m.runLabel))
		case runner.Cancelled:
			m.setInfo(fmt.Sprintf("%s: stopped after %d action(s)", m.runLabel, msg.outcome.Steps))
		default:
			m.setError(msg.outcome.Err)
		}
		return m, nil

	case projectsChangedMsg:
		if err := m.service.Reload(); err != nil {
			m.setError(err)
		} else {
			m.reloaded()
		}
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.run != nil {
			m.run.Cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.state != nil && m.cursor < m.state.Current().Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.NextProject), key.Matches(msg, keys.PrevProject):
		if len(m.projects) == 0 {
			break
		}
		step := 1
		if key.Matches(msg, keys.PrevProject) {
			step = len(m.projects) - 1
		}
		m.projectIdx = (m.projectIdx + step) % len(m.projects)
		m.selectProject()

	case key.Matches(msg, keys.Back):
		if m.run != nil {
			m.run.Cancel()
			m.setInfo("Stopping after the current action...")
			break
		}
		m.ascend()

	case key.Matches(msg, keys.Parent):
		m.ascend()

	case key.Matches(msg, keys.Confirm):
		return m.activate()

	case key.Matches(msg, keys.Edit):
		if err := m.service.OpenConfig(); err != nil {
			m.setError(err)
		} else {
			m.setInfo("Opening " + m.service.Store.Path())
		}

	case key.Matches(msg, keys.Reload):
		if err := m.service.Reload(); err != nil {
			m.setError(err)
		} else {
			m.reloaded()
		}
	}
	return m, nil
}

func (m *Model) ascend() {
	if m.state == nil {
		return
	}
	if err := m.state.Ascend(); err != nil {
		if errors.Is(err, navigator.ErrAtRoot) {
			m.setInfo("Already at the top level")
		} else {
			m.setError(err)
		}
		return
	}
	m.cursor = 0
	if n := len(m.cursors); n > 0 {
		m.cursor = m.cursors[n-1]
		m.cursors = m.cursors[:n-1]
	}
}

// activate descends into the selected group or runs the selected executable.
func (m Model) activate() (tea.Model, tea.Cmd) {
	label, ok := m.selectedLabel()
	if !ok {
		return m, nil
	}
	opt, _ := m.state.Current().Get(label)
	if opt.Type() == models.OptionTypeGroup {
		if err := m.state.Descend(label); err != nil {
			m.setError(err)
			return m, nil
		}
		m.cursors = append(m.cursors, m.cursor)
		m.cursor = 0
		return m, nil
	}

	h, err := m.service.Run(m.ctx, m.state, label)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.run = h
	m.runLabel = label
	m.progress = runner.Status{}
	m.setInfo("Running " + label + "...")
	return m, waitForRun(h)
}

func (m *Model) reloaded() {
	current := ""
	if len(m.projects) > 0 {
		current = m.projects[m.projectIdx]
	}
	m.loadProjects(current)
	m.setInfo("Projects reloaded")
}
