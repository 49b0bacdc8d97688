package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-launcher/internal/tui/browser"
	"github.com/mattsolo1/grove-launcher/pkg/service"
	"github.com/mattsolo1/grove-launcher/pkg/watcher"
)

// NewBrowseCmd creates the `launcher browse` command.
func NewBrowseCmd(svc **service.Service) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"tui"},
		Short:   "Browse projects and options interactively",
		Long: `Launch an interactive browser over the configured projects.

Select a project with tab, drill into option groups with enter and go back
with backspace. Selecting an executable option runs its actions while the
browser stays responsive; esc stops the run before its next action. The
projects file is reloaded automatically when it changes on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("browse requires an interactive terminal")
			}

			s := *svc
			ctx := cmd.Context()

			var changes <-chan struct{}
			if !noWatch {
				w, err := watcher.New(s.Store.Path(),
					watcher.WithLogger(s.Logger.WithField("component", "watcher")))
				if err != nil {
					return err
				}
				if err := w.Start(ctx); err != nil {
					s.Logger.WithError(err).Warn("projects file will not be watched")
				} else {
					defer w.Close()
					changes = w.Changes()
				}
			}

			// The alt screen owns the terminal; failures surface in the status line.
			s.Logger.Logger.SetOutput(io.Discard)

			p := tea.NewProgram(browser.New(ctx, s, changes), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the projects file changes")
	return cmd
}
