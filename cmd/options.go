package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-launcher/pkg/models"
	"github.com/mattsolo1/grove-launcher/pkg/navigator"
	"github.com/mattsolo1/grove-launcher/pkg/service"
)

type optionJSON struct {
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Actions []string `json:"actions,omitempty"`
}

func NewOptionsCmd(svc **service.Service) *cobra.Command {
	var optionsJSON bool

	cmd := &cobra.Command{
		Use:   "options <project> [option...]",
		Short: "Show the options of a project, optionally inside nested groups",
		Long: `Show the options of a project in display order.

Extra arguments descend into option groups, one level per argument.

Examples:
  launcher options "Super Pagamentos"
  launcher options shop Backend`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			state, err := s.Open(args[0], args[1:]...)
			if err != nil {
				return err
			}

			entries := state.Entries()
			if optionsJSON {
				out := make([]optionJSON, 0, len(entries))
				for _, e := range entries {
					out = append(out, optionJSON{Label: e.Label, Type: string(e.Type), Actions: describeActions(state, e.Label)})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, strings.Join(append([]string{state.Project().Name}, state.Path()...), " > "))
			if len(entries) == 0 {
				fmt.Fprintln(w, "  (no options)")
			}
			for _, e := range entries {
				fmt.Fprintf(w, "  %s %s\n", marker(e.Type), e.Label)
				for _, d := range describeActions(state, e.Label) {
					fmt.Fprintf(w, "      - %s\n", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&optionsJSON, "json", false, "Output in JSON format")
	return cmd
}

func describeActions(state *navigator.State, label string) []string {
	actions, ok := state.SelectableActions(label)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, describe(a))
	}
	return out
}

func describe(a models.Action) string {
	return "[" + a.Kind().Label() + "] " + a.Describe()
}
