package main

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-launcher/cmd"
	"github.com/mattsolo1/grove-launcher/cmd/config"
	"github.com/mattsolo1/grove-launcher/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := cli.NewStandardCommand(
		"launcher",
		"Pick a project, drill into its options and launch editors, terminals and commands",
	)
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()
		if c.Annotations[cmd.AnnotationNoService] != "" {
			return nil
		}

		cfg, err := config.ServiceConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger()
		svc, err = service.New(cfg, logrus.NewEntry(logger))
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewOptionsCmd(&svc))
	rootCmd.AddCommand(cmd.NewRunCmd(&svc))
	rootCmd.AddCommand(cmd.NewBrowseCmd(&svc))
	rootCmd.AddCommand(cmd.NewEditCmd(&svc))
	rootCmd.AddCommand(cmd.NewDoctorCmd(&svc))
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
