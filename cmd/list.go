package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-launcher/pkg/service"
)

type projectJSON struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Options int    `json:"options"`
}

func NewListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List configured projects",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			projects := s.Projects().Projects()

			if listJSON {
				out := make([]projectJSON, 0, len(projects))
				for _, p := range projects {
					out = append(out, projectJSON{Name: p.Name, Path: p.Path, Options: p.Options.Len()})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			if len(projects) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No projects configured in %s\n", s.Store.Path())
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROJECT\tPATH\tOPTIONS")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%d\n", p.Name, p.Path, p.Options.Len())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}
