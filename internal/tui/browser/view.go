package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.projects) == 0 {
		return "\nNo projects configured. Press e to edit " + m.service.Store.Path() + "\n"
	}

	if m.help.ShowAll {
		return "\n" + m.help.View(keys)
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		m.renderOptions(),
		"",
		m.renderStatus(),
		m.help.View(keys),
	)
	return "\n" + fullView
}

func (m Model) renderHeader() string {
	var tabs []string
	for i, name := range m.projects {
		if i == m.projectIdx {
			tabs = append(tabs, theme.DefaultTheme.Header.Render(name))
		} else {
			tabs = append(tabs, theme.DefaultTheme.Muted.Render(name))
		}
	}
	header := strings.Join(tabs, "  ")

	if m.state == nil {
		return header
	}
	crumbs := append([]string{m.state.Project().Name}, m.state.Path()...)
	return header + "\n" + theme.DefaultTheme.Info.Render(strings.Join(crumbs, " › "))
}

func (m Model) renderOptions() string {
	if m.state == nil {
		return theme.DefaultTheme.Muted.Render("No project selected.")
	}
	entries := m.state.Entries()
	if len(entries) == 0 {
		return theme.DefaultTheme.Muted.Render("This level has no options.")
	}

	var b strings.Builder
	for i, e := range entries {
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		icon := "▸"
		if e.Type == models.OptionTypeGroup {
			icon = "+"
		}
		line := fmt.Sprintf("%s %s", icon, e.Label)
		if i == m.cursor {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(cursor + line)
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.running() && m.progress.Total > 0 {
		return theme.DefaultTheme.Info.Render(m.progress.String())
	}
	if m.message == "" {
		return ""
	}
	if m.isError {
		return errorStyle.Render(m.message)
	}
	return theme.DefaultTheme.Success.Render(m.message)
}
