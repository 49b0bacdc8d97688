package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-launcher/pkg/service"
)

func NewEditCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the projects file with the default application",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.OpenConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", s.Store.Path())
			return nil
		},
	}
}
