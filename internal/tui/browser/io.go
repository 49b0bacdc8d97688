package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-launcher/pkg/runner"
)

type runStatusMsg struct {
	status runner.Status
}

type runFinishedMsg struct {
	outcome runner.Outcome
}

type projectsChangedMsg struct{}

// waitForRun delivers the next status of h, then its outcome once the
// update stream is closed.
func waitForRun(h *runner.Handle) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-h.Updates()
		if !ok {
			return runFinishedMsg{outcome: h.Wait()}
		}
		return runStatusMsg{status: status}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return projectsChangedMsg{}
	}
}
