package launcher

import (
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// Command is a fully shaped process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// CmdLine, when set, is the exact Windows command line. cmd.exe does not
	// follow the argv quoting rules exec applies to Args.
	CmdLine string
}

// String renders the command for logs.
func (c Command) String() string {
	if c.CmdLine != "" {
		return c.CmdLine
	}
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// DefaultDistro is the WSL distribution used when none is configured.
const DefaultDistro = "Ubuntu"

// DefaultLinuxTerminal opens a new gnome-terminal window running the trailing args.
var DefaultLinuxTerminal = []string{"gnome-terminal", "--"}

// Platform shapes command lines for one operating system.
type Platform struct {
	GOOS string
	// Terminal is the argv prefix that opens a new terminal window on Linux
	// and runs the remaining arguments inside it.
	Terminal []string
	// Distro names the WSL distribution used for subsystem commands on Windows.
	Distro string
}

// CurrentPlatform returns the platform of the running process with default settings.
func CurrentPlatform() Platform {
	return Platform{GOOS: runtime.GOOS, Terminal: DefaultLinuxTerminal, Distro: DefaultDistro}
}

func (p Platform) terminal() []string {
	if len(p.Terminal) == 0 {
		return DefaultLinuxTerminal
	}
	return p.Terminal
}

func (p Platform) distro() string {
	if p.Distro == "" {
		return DefaultDistro
	}
	return p.Distro
}

// Editor opens dir with the given editor executable.
func (p Platform) Editor(editor, dir string) Command {
	return Command{Name: editor, Args: []string{dir}, Dir: dir}
}

// TerminalAt opens an interactive shell whose working directory is dir.
func (p Platform) TerminalAt(dir string) Command {
	switch p.GOOS {
	case "windows":
		return Command{Name: "cmd", Args: []string{"/c", "start", "", "cmd"}, Dir: dir, CmdLine: `cmd /c start "" cmd`}
	case "darwin":
		return terminalApp(dir, "cd "+shellquote.Join(dir))
	default:
		return p.linuxShell(dir, "cd "+shellquote.Join(dir)+"; exec bash")
	}
}

// CommandAt opens a terminal in dir, runs command and leaves the shell open.
func (p Platform) CommandAt(dir, command string) Command {
	switch p.GOOS {
	case "windows":
		return windowsConsole(dir, command)
	case "darwin":
		return terminalApp(dir, "cd "+shellquote.Join(dir)+" && "+command)
	default:
		return p.linuxShell(dir, "cd "+shellquote.Join(dir)+" && "+command+"; exec bash")
	}
}

// SubsystemAt runs command inside WSL from dir on Windows. WSL maps the Windows
// working directory into the distribution. Other platforms have no secondary
// subsystem and run the command in a regular terminal.
func (p Platform) SubsystemAt(dir, command string) Command {
	if p.GOOS != "windows" {
		return p.CommandAt(dir, command)
	}
	script := command + "; exec bash"
	args := []string{"/c", "start", "", "wsl", "-d", p.distro(), "-e", "bash", "-c", script}
	line := `cmd /c start "" wsl -d ` + p.distro() + ` -e bash -c ` + argvQuote(script)
	return Command{Name: "cmd", Args: args, Dir: dir, CmdLine: cmdEscape(line)}
}

// OpenApp launches an installed application by name through the platform facility.
func (p Platform) OpenApp(tool models.Tool) Command {
	switch p.GOOS {
	case "darwin":
		return Command{Name: "open", Args: []string{"-a", string(tool)}}
	case "windows":
		return Command{Name: "cmd", Args: []string{"/c", "start", "", strings.ToLower(string(tool)) + ":"}}
	default:
		return Command{Name: BareName(p.GOOS, tool)}
	}
}

// OpenFile opens path with the desktop's default handler.
func (p Platform) OpenFile(path string) Command {
	switch p.GOOS {
	case "windows":
		return Command{
			Name:    "cmd",
			Args:    []string{"/c", "start", "", path},
			CmdLine: cmdEscape(`cmd /c start "" "` + path + `"`),
		}
	case "darwin":
		return Command{Name: "open", Args: []string{path}}
	default:
		return Command{Name: "xdg-open", Args: []string{path}}
	}
}

func (p Platform) linuxShell(dir, script string) Command {
	argv := append(append([]string(nil), p.terminal()...), "bash", "-c", script)
	return Command{Name: argv[0], Args: argv[1:], Dir: dir}
}

// windowsConsole opens a new console that runs script and stays open. The
// inner cmd strips the outer quotes of its /k argument.
func windowsConsole(dir, script string) Command {
	return Command{
		Name:    "cmd",
		Args:    []string{"/c", "start", "", "cmd", "/k", script},
		Dir:     dir,
		CmdLine: cmdEscape(`cmd /c start "" cmd /k "` + script + `"`),
	}
}

// cmdEscape prefixes the cmd.exe metacharacters that fall outside double
// quotes with ^ so the outer cmd /c hands them to the started program.
func cmdEscape(line string) string {
	var b strings.Builder
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && strings.ContainsRune("&|<>()^", r):
			b.WriteByte('^')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// argvQuote quotes s as one argument for programs that parse their command
// line with the Microsoft C runtime rules, such as wsl.exe.
func argvQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for _, r := range s {
		switch r {
		case '\\':
			slashes++
		case '"':
			b.WriteString(strings.Repeat(`\`, slashes*2+1))
			slashes = 0
		default:
			b.WriteString(strings.Repeat(`\`, slashes))
			slashes = 0
		}
		if r != '\\' {
			b.WriteRune(r)
		}
	}
	b.WriteString(strings.Repeat(`\`, slashes*2))
	b.WriteByte('"')
	return b.String()
}

func terminalApp(dir, script string) Command {
	return Command{
		Name: "osascript",
		Args: []string{"-e", `tell application "Terminal" to do script "` + appleScriptEscape(script) + `"`},
		Dir:  dir,
	}
}

func appleScriptEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
