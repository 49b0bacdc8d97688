package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-launcher/pkg/launcher"
	"github.com/mattsolo1/grove-launcher/pkg/models"
	"github.com/mattsolo1/grove-launcher/pkg/navigator"
	"github.com/mattsolo1/grove-launcher/pkg/runner"
	"github.com/mattsolo1/grove-launcher/pkg/store"
)

var (
	// ErrRunInProgress is returned when a run is requested while another is active.
	ErrRunInProgress = errors.New("another run is still in progress")
	// ErrNotExecutable is returned when the selected option is a group or missing.
	ErrNotExecutable = errors.New("option cannot be executed directly")
)

// Launcher is the process boundary used by the service.
type Launcher interface {
	launcher.Launcher
	OpenFile(path string) error
}

// Config holds service configuration
type Config struct {
	ProjectsFile   string
	StepDelay      time.Duration
	Editors        []string
	Terminal       []string
	Distro         string
	ToolCandidates map[models.Tool][]string

	// GOOS overrides the target platform, mainly for tests.
	GOOS string

	// Launcher overrides the OS launcher, mainly for tests.
	Launcher Launcher
}

// Service is the launcher session: the loaded projects plus the single active run.
type Service struct {
	Config   *Config
	Store    *store.Store
	Logger   *logrus.Entry
	launcher Launcher
	platform launcher.Platform
	resolver *launcher.Resolver
	runner   *runner.Runner

	mu       sync.Mutex
	projects *models.ProjectSet
	active   *runner.Handle
}

// New creates a service and loads the projects file, writing the default one
// if it is missing or invalid.
func New(config *Config, logger *logrus.Entry) (*Service, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	if config.ProjectsFile == "" {
		return nil, errors.New("no projects file configured")
	}

	platform := launcher.CurrentPlatform()
	if config.GOOS != "" {
		platform.GOOS = config.GOOS
	}
	if len(config.Terminal) > 0 {
		platform.Terminal = config.Terminal
	}
	if config.Distro != "" {
		platform.Distro = config.Distro
	}
	resolver := launcher.NewResolver(platform.GOOS, config.ToolCandidates)

	l := config.Launcher
	if l == nil {
		opts := []launcher.Option{
			launcher.WithPlatform(platform),
			launcher.WithResolver(resolver),
			launcher.WithLogger(logger.WithField("component", "launcher")),
		}
		if len(config.Editors) > 0 {
			opts = append(opts, launcher.WithEditors(config.Editors...))
		}
		l = launcher.NewOS(opts...)
	}

	s := &Service{
		Config:   config,
		Store:    store.New(config.ProjectsFile, logger.WithField("component", "store")),
		Logger:   logger,
		launcher: l,
		platform: platform,
		resolver: resolver,
		runner: runner.New(l,
			runner.WithStepDelay(config.StepDelay),
			runner.WithLogger(logger.WithField("component", "runner")),
		),
	}

	projects, synthesized, err := s.Store.LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if synthesized {
		logger.WithField("file", config.ProjectsFile).Info("using default projects")
	}
	s.projects = projects
	return s, nil
}

// Projects returns the loaded project set.
func (s *Service) Projects() *models.ProjectSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects
}

// Reload re-reads the projects file. On failure the previous set is kept.
// Navigation states handed out earlier keep pointing at the old tree.
func (s *Service) Reload() error {
	projects, err := s.Store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// Navigator returns a navigator over the current project set.
func (s *Service) Navigator() *navigator.Navigator {
	return navigator.New(s.Projects())
}

// Open selects project and descends through labels.
func (s *Service) Open(project string, labels ...string) (*navigator.State, error) {
	state, err := s.Navigator().SelectProject(project)
	if err != nil {
		return nil, err
	}
	if err := state.Walk(labels...); err != nil {
		return nil, err
	}
	return state, nil
}

// Run starts the executable under label in the state's current node. The
// project path and actions are captured now; later navigation does not affect
// the run.
func (s *Service) Run(ctx context.Context, state *navigator.State, label string) (*runner.Handle, error) {
	actions, ok := state.SelectableActions(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotExecutable, label)
	}
	basePath := state.Project().Path

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		select {
		case <-s.active.Done():
		default:
			return nil, ErrRunInProgress
		}
	}

	s.Logger.WithFields(logrus.Fields{
		"project": state.Project().Name,
		"option":  label,
		"actions": len(actions),
	}).Info("starting run")
	s.active = s.runner.Run(ctx, basePath, actions)
	return s.active, nil
}

// RunPath opens project, descends through all but the last label and runs the last.
func (s *Service) RunPath(ctx context.Context, project string, labels []string) (*runner.Handle, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no option given", ErrNotExecutable)
	}
	state, err := s.Open(project, labels[:len(labels)-1]...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, state, labels[len(labels)-1])
}

// OpenConfig opens the projects file with the desktop's default handler.
func (s *Service) OpenConfig() error {
	return s.launcher.OpenFile(s.Store.Path())
}

// Resolver returns the tool resolver used by the OS launcher.
func (s *Service) Resolver() *launcher.Resolver {
	return s.resolver
}
