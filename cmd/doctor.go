package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-launcher/pkg/service"
)

func NewDoctorCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check projects for missing paths and tools",
		Long: `The doctor command checks the projects file for common problems:
- Project base paths that do not exist
- Action directories that do not exist
- Postman or DBeaver not found in the known install locations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "Checking %s\n\n", s.Store.Path())
			problems, err := s.Check(cmd.Context())
			if err != nil {
				return err
			}

			errCount := 0
			for _, p := range problems {
				fmt.Fprintln(w, p)
				if p.Severity == service.SeverityError {
					errCount++
				}
			}
			if len(problems) == 0 {
				fmt.Fprintln(w, "✓ No problems found")
				return nil
			}
			fmt.Fprintf(w, "\n%d problem(s), %d error(s)\n", len(problems), errCount)
			if errCount > 0 {
				return fmt.Errorf("%d error(s) found", errCount)
			}
			return nil
		},
	}
}
