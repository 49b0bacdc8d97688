package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-launcher/pkg/launcher"
	"github.com/mattsolo1/grove-launcher/pkg/models"
	"github.com/mattsolo1/grove-launcher/pkg/runner"
	"github.com/mattsolo1/grove-launcher/pkg/service"
)

var (
	settingsFile string
	projectsFile string
)

// Dir is the directory holding the settings file and the default projects file.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "grove-launcher")
	}
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, ".config", "grove-launcher")
}

func InitConfig() {
	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		viper.AddConfigPath(Dir())
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("LAUNCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	// A missing settings file is the normal case.
	_ = viper.ReadInConfig()

	if projectsFile != "" {
		viper.Set("projects_file", projectsFile)
	}
}

// SetDefaults registers the default value of every setting.
func SetDefaults() {
	viper.SetDefault("projects_file", filepath.Join(Dir(), "config.json"))
	viper.SetDefault("step_delay", runner.DefaultStepDelay)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("editor.primary", launcher.DefaultEditor)
	viper.SetDefault("editor.fallback", launcher.DefaultFallbackEditor)
	viper.SetDefault("terminal.linux", launcher.DefaultLinuxTerminal)
	viper.SetDefault("subsystem.distro", launcher.DefaultDistro)
	viper.SetDefault("tools.postman", []string{})
	viper.SetDefault("tools.dbeaver", []string{})
}

// Settings mirrors settings.yaml.
type Settings struct {
	ProjectsFile string        `mapstructure:"projects_file"`
	StepDelay    time.Duration `mapstructure:"step_delay"`
	LogLevel     string        `mapstructure:"log_level"`
	Editor       struct {
		Primary  string `mapstructure:"primary"`
		Fallback string `mapstructure:"fallback"`
	} `mapstructure:"editor"`
	Terminal struct {
		Linux []string `mapstructure:"linux"`
	} `mapstructure:"terminal"`
	Subsystem struct {
		Distro string `mapstructure:"distro"`
	} `mapstructure:"subsystem"`
	Tools struct {
		Postman []string `mapstructure:"postman"`
		DBeaver []string `mapstructure:"dbeaver"`
	} `mapstructure:"tools"`
}

// Load decodes the current settings. Durations accept "500ms" style strings
// and lists accept comma separated strings, which is what environment
// variables provide.
func Load() (*Settings, error) {
	var s Settings
	err := viper.Unmarshal(&s, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// ServiceConfig builds the service configuration from the loaded settings.
func ServiceConfig() (*service.Config, error) {
	s, err := Load()
	if err != nil {
		return nil, err
	}
	var editors []string
	for _, e := range []string{s.Editor.Primary, s.Editor.Fallback} {
		if e != "" {
			editors = append(editors, e)
		}
	}
	return &service.Config{
		ProjectsFile: s.ProjectsFile,
		StepDelay:    s.StepDelay,
		Editors:      editors,
		Terminal:     s.Terminal.Linux,
		Distro:       s.Subsystem.Distro,
		ToolCandidates: map[models.Tool][]string{
			models.ToolPostman: s.Tools.Postman,
			models.ToolDBeaver: s.Tools.DBeaver,
		},
	}, nil
}

// NewLogger builds the process logger. Unknown levels fall back to warn.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default is <user config dir>/grove-launcher/settings.yaml)")
	cmd.PersistentFlags().StringVar(&projectsFile, "projects", "", "projects file (overrides projects_file)")
}
