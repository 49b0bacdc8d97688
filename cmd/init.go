package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-launcher/cmd/config"
	"github.com/mattsolo1/grove-launcher/pkg/models"
	"github.com/mattsolo1/grove-launcher/pkg/store"
)

func NewInitCmd() *cobra.Command {
	var initForce bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default projects file",
		Long: `Write the built-in default projects file.

An existing file is left alone unless --force is given. The format follows
the file extension: .yaml/.yml for YAML, JSON otherwise.`,
		Annotations: map[string]string{AnnotationNoService: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("projects_file")
			if _, err := os.Stat(path); err == nil && !initForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check projects file: %w", err)
			}

			s := store.New(path, logrus.NewEntry(config.NewLogger()))
			if err := s.Save(models.DefaultProjectSet()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default projects to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing projects file")
	return cmd
}
