// Package launcher is the process boundary: it turns launch requests into detached
// OS processes. Nothing here waits for a spawned program to exit.
package launcher

import (
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// Launcher starts external programs on behalf of the action runner.
type Launcher interface {
	OpenEditor(dir string) error
	OpenTool(tool models.Tool) error
	OpenTerminal(dir string) error
	RunCommand(dir, command string) error
	RunInSubsystem(dir, command string) error
}

// Spawner starts cmd without waiting for it to finish.
type Spawner func(cmd Command) error

// Default editors, tried in order.
const (
	DefaultEditor         = "cursor"
	DefaultFallbackEditor = "code"
)

// OS launches processes on the local machine.
type OS struct {
	platform Platform
	resolver *Resolver
	editors  []string
	spawn    Spawner
	logger   *logrus.Entry
}

// Option configures an OS launcher.
type Option func(*OS)

// WithPlatform overrides the detected platform.
func WithPlatform(p Platform) Option {
	return func(o *OS) { o.platform = p }
}

// WithResolver sets the tool resolver.
func WithResolver(r *Resolver) Option {
	return func(o *OS) { o.resolver = r }
}

// WithEditors sets the editor executables, primary first. Empty names are skipped.
func WithEditors(editors ...string) Option {
	return func(o *OS) {
		o.editors = o.editors[:0]
		for _, e := range editors {
			if e != "" {
				o.editors = append(o.editors, e)
			}
		}
	}
}

// WithSpawner replaces process creation, mainly for tests.
func WithSpawner(s Spawner) Option {
	return func(o *OS) { o.spawn = s }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Entry) Option {
	return func(o *OS) { o.logger = l }
}

// NewOS creates a launcher for the current platform.
func NewOS(opts ...Option) *OS {
	o := &OS{
		platform: CurrentPlatform(),
		editors:  []string{DefaultEditor, DefaultFallbackEditor},
		spawn:    Start,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.resolver == nil {
		o.resolver = NewResolver(o.platform.GOOS, nil)
	}
	if o.logger == nil {
		o.logger = logrus.NewEntry(logrus.New())
	}
	return o
}

// Start is the default Spawner. The child is reaped in the background.
func Start(c Command) error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	setCmdLine(cmd, c.CmdLine)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (o *OS) start(c Command) error {
	o.logger.WithFields(logrus.Fields{"cmd": c.String(), "dir": c.Dir}).Debug("spawning process")
	return o.spawn(c)
}

// OpenEditor tries each configured editor and stops at the first that starts.
func (o *OS) OpenEditor(dir string) error {
	var lastErr error
	for _, editor := range o.editors {
		err := o.start(o.platform.Editor(editor, dir))
		if err == nil {
			return nil
		}
		o.logger.WithError(err).WithField("editor", editor).Debug("editor did not start")
		lastErr = err
	}
	return &LaunchError{Kind: ErrEditorUnavailable, Target: dir, Err: lastErr}
}

// OpenTool launches a named tool. On macOS the application is opened by name;
// elsewhere the resolver's pick is started, with the URI scheme as a last
// resort on Windows.
func (o *OS) OpenTool(tool models.Tool) error {
	if o.platform.GOOS == "darwin" {
		if err := o.start(o.platform.OpenApp(tool)); err != nil {
			return &LaunchError{Kind: ErrToolLaunchFailed, Target: string(tool), Err: err}
		}
		return nil
	}

	path, found := o.resolver.Resolve(tool)
	err := o.start(Command{Name: path})
	if err == nil {
		return nil
	}
	o.logger.WithError(err).WithFields(logrus.Fields{"tool": tool, "path": path, "found": found}).Debug("tool did not start")
	if o.platform.GOOS == "windows" {
		if uriErr := o.start(o.platform.OpenApp(tool)); uriErr == nil {
			return nil
		}
	}
	return &LaunchError{Kind: ErrToolLaunchFailed, Target: string(tool), Err: err}
}

// OpenTerminal opens a terminal window in dir.
func (o *OS) OpenTerminal(dir string) error {
	if err := o.start(o.platform.TerminalAt(dir)); err != nil {
		return &LaunchError{Kind: ErrTerminalLaunchFailed, Target: dir, Err: err}
	}
	return nil
}

// RunCommand opens a terminal in dir running command.
func (o *OS) RunCommand(dir, command string) error {
	if err := o.start(o.platform.CommandAt(dir, command)); err != nil {
		return &LaunchError{Kind: ErrCommandLaunchFailed, Target: command, Err: err}
	}
	return nil
}

// RunInSubsystem opens a terminal in dir running command in the secondary subsystem.
func (o *OS) RunInSubsystem(dir, command string) error {
	if err := o.start(o.platform.SubsystemAt(dir, command)); err != nil {
		return &LaunchError{Kind: ErrSubsystemLaunchFailed, Target: command, Err: err}
	}
	return nil
}

// OpenFile opens path with the desktop's default handler.
func (o *OS) OpenFile(path string) error {
	if err := o.start(o.platform.OpenFile(path)); err != nil {
		return &LaunchError{Kind: ErrOpenFailed, Target: path, Err: err}
	}
	return nil
}

// Resolver exposes the tool resolver.
func (o *OS) Resolver() *Resolver {
	return o.resolver
}
