package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-launcher/pkg/runner"
	"github.com/mattsolo1/grove-launcher/pkg/service"
)

func NewRunCmd(svc **service.Service) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "run <project> <option...>",
		Short: "Run the actions of an executable option",
		Long: `Run the actions of an executable option one after another.

The last argument names the executable option; any arguments before it
descend into option groups. Ctrl-C stops the run before its next action.

Examples:
  launcher run "Super Pagamentos" "Front Dashboard"
  launcher run shop Backend API --delay 0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			h, err := s.RunPath(ctx, args[0], args[1:])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for status := range h.Updates() {
				fmt.Fprintln(w, status)
			}
			outcome := h.Wait()
			switch outcome.State {
			case runner.Succeeded:
				fmt.Fprintf(w, "✓ %d action(s) executed successfully\n", outcome.Steps)
				return nil
			case runner.Cancelled:
				return fmt.Errorf("run cancelled after %d action(s)", outcome.Steps)
			default:
				return fmt.Errorf("run failed: %w", outcome.Err)
			}
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", runner.DefaultStepDelay, "Pause after each action (0 disables)")
	_ = viper.BindPFlag("step_delay", cmd.Flags().Lookup("delay"))
	return cmd
}
