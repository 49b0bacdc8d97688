package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActionKind is the wire discriminator of an action.
type ActionKind string

const (
	KindOpenEditor     ActionKind = "open_cursor"
	KindOpenPostman    ActionKind = "open_postman"
	KindOpenDBeaver    ActionKind = "open_dbeaver"
	KindOpenTerminal   ActionKind = "open_terminal"
	KindRunCommand     ActionKind = "run_command"
	KindRunInSubsystem ActionKind = "run_wsl"
	KindWait           ActionKind = "wait"
)

// SubsystemSeparator joins multiple subsystem commands so each runs only if the
// previous one succeeded.
const SubsystemSeparator = " && "

// DefaultWaitSeconds is used when a wait action omits or negates its duration.
const DefaultWaitSeconds = 1.0

var titleCaser = cases.Title(language.English)

// Label returns a human readable form of the kind, e.g. "Open Terminal".
func (k ActionKind) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(k), "_", " "))
}

// Action is one external-effect instruction of an executable option.
// The set of implementations is closed to this package.
type Action interface {
	Kind() ActionKind
	Describe() string
	isAction()
}

// PathAction is implemented by actions that operate inside a directory relative
// to the project's base path.
type PathAction interface {
	Action
	RelativePath() string
}

// Tool identifies a named desktop application launched by OpenTool.
type Tool string

const (
	ToolPostman Tool = "Postman"
	ToolDBeaver Tool = "DBeaver"
)

// Tools lists every known tool in a stable order.
var Tools = []Tool{ToolPostman, ToolDBeaver}

// OpenEditor opens the code editor on a directory.
type OpenEditor struct {
	Path string
}

// OpenTool launches a named desktop application.
type OpenTool struct {
	Tool Tool
}

// OpenTerminal opens a terminal window in a directory.
type OpenTerminal struct {
	Path string
}

// RunCommand opens a terminal in a directory and runs Command, leaving the shell open.
type RunCommand struct {
	Path    string
	Command string
}

// RunInSubsystem runs Commands inside the secondary OS subsystem (WSL on Windows).
type RunInSubsystem struct {
	Path     string
	Commands []string
}

// Wait pauses the run.
type Wait struct {
	Seconds float64
}

func (OpenEditor) isAction()     {}
func (OpenTool) isAction()       {}
func (OpenTerminal) isAction()   {}
func (RunCommand) isAction()     {}
func (RunInSubsystem) isAction() {}
func (Wait) isAction()           {}

func (OpenEditor) Kind() ActionKind { return KindOpenEditor }

func (a OpenTool) Kind() ActionKind {
	if a.Tool == ToolDBeaver {
		return KindOpenDBeaver
	}
	return KindOpenPostman
}

func (OpenTerminal) Kind() ActionKind   { return KindOpenTerminal }
func (RunCommand) Kind() ActionKind     { return KindRunCommand }
func (RunInSubsystem) Kind() ActionKind { return KindRunInSubsystem }
func (Wait) Kind() ActionKind           { return KindWait }

func (a OpenEditor) RelativePath() string     { return a.Path }
func (a OpenTerminal) RelativePath() string   { return a.Path }
func (a RunCommand) RelativePath() string     { return a.Path }
func (a RunInSubsystem) RelativePath() string { return a.Path }

func (a OpenEditor) Describe() string {
	return fmt.Sprintf("Opening editor: %s", displayPath(a.Path))
}

func (a OpenTool) Describe() string {
	return fmt.Sprintf("Opening %s", a.Tool)
}

func (a OpenTerminal) Describe() string {
	return fmt.Sprintf("Opening terminal in: %s", displayPath(a.Path))
}

func (a RunCommand) Describe() string {
	return fmt.Sprintf("Running: %s", a.Command)
}

func (a RunInSubsystem) Describe() string {
	return fmt.Sprintf("Running in subsystem: %s", a.CommandLine())
}

func (a Wait) Describe() string {
	return fmt.Sprintf("Waiting %g seconds", a.Seconds)
}

// CommandLine joins the commands into the single string handed to the subsystem shell.
func (a RunInSubsystem) CommandLine() string {
	return strings.Join(a.Commands, SubsystemSeparator)
}

// MaxWaitSeconds is the longest wait a time.Duration can hold.
const MaxWaitSeconds = float64(math.MaxInt64 / int64(time.Second))

// Duration converts Seconds to a time.Duration. Negative and NaN values count
// as zero; values past MaxWaitSeconds are clamped.
func (a Wait) Duration() time.Duration {
	switch {
	case !(a.Seconds > 0):
		return 0
	case a.Seconds >= MaxWaitSeconds:
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(a.Seconds * float64(time.Second))
}

func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}
