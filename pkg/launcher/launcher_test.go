package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

type recorder struct {
	calls []Command
	fail  map[string]error
}

func (r *recorder) spawn(c Command) error {
	r.calls = append(r.calls, c)
	if err, ok := r.fail[c.Name]; ok {
		return err
	}
	return nil
}

func newTestOS(goos string, r *recorder, opts ...Option) *OS {
	base := []Option{
		WithPlatform(Platform{GOOS: goos}),
		WithSpawner(r.spawn),
	}
	return NewOS(append(base, opts...)...)
}

func TestPlatformCommandsKeepWorkingDirectory(t *testing.T) {
	dir := "/work/my project"
	for _, goos := range []string{"linux", "darwin", "windows"} {
		p := Platform{GOOS: goos}
		for name, c := range map[string]Command{
			"terminal":  p.TerminalAt(dir),
			"command":   p.CommandAt(dir, "npm start"),
			"subsystem": p.SubsystemAt(dir, "make"),
			"editor":    p.Editor("code", dir),
		} {
			t.Run(goos+"/"+name, func(t *testing.T) {
				assert.Equal(t, dir, c.Dir)
			})
		}
	}
}

func TestPlatformCommandShapes(t *testing.T) {
	tests := []struct {
		name string
		got  Command
		want Command
	}{
		{
			name: "linux terminal",
			got:  Platform{GOOS: "linux"}.TerminalAt("/srv/app"),
			want: Command{Name: "gnome-terminal", Args: []string{"--", "bash", "-c", "cd /srv/app; exec bash"}, Dir: "/srv/app"},
		},
		{
			name: "linux command quotes the directory",
			got:  Platform{GOOS: "linux"}.CommandAt("/srv/my app", "npm start"),
			want: Command{Name: "gnome-terminal", Args: []string{"--", "bash", "-c", `cd '/srv/my app' && npm start; exec bash`}, Dir: "/srv/my app"},
		},
		{
			name: "linux custom terminal",
			got:  Platform{GOOS: "linux", Terminal: []string{"kitty", "-e"}}.CommandAt("/srv", "ls"),
			want: Command{Name: "kitty", Args: []string{"-e", "bash", "-c", "cd /srv && ls; exec bash"}, Dir: "/srv"},
		},
		{
			name: "linux subsystem runs in a plain terminal",
			got:  Platform{GOOS: "linux"}.SubsystemAt("/srv", "a && b"),
			want: Command{Name: "gnome-terminal", Args: []string{"--", "bash", "-c", "cd /srv && a && b; exec bash"}, Dir: "/srv"},
		},
		{
			name: "windows terminal",
			got:  Platform{GOOS: "windows"}.TerminalAt(`C:\p`),
			want: Command{Name: "cmd", Args: []string{"/c", "start", "", "cmd"}, Dir: `C:\p`, CmdLine: `cmd /c start "" cmd`},
		},
		{
			name: "windows command",
			got:  Platform{GOOS: "windows"}.CommandAt(`C:\p`, "npm i && npm start"),
			want: Command{
				Name:    "cmd",
				Args:    []string{"/c", "start", "", "cmd", "/k", "npm i && npm start"},
				Dir:     `C:\p`,
				CmdLine: `cmd /c start "" cmd /k "npm i && npm start"`,
			},
		},
		{
			name: "windows subsystem",
			got:  Platform{GOOS: "windows", Distro: "Debian"}.SubsystemAt(`C:\p`, `a && echo "hi"`),
			want: Command{
				Name:    "cmd",
				Args:    []string{"/c", "start", "", "wsl", "-d", "Debian", "-e", "bash", "-c", `a && echo "hi"; exec bash`},
				Dir:     `C:\p`,
				CmdLine: `cmd /c start "" wsl -d Debian -e bash -c "a && echo \"hi\"; exec bash"`,
			},
		},
		{
			name: "windows open file",
			got:  Platform{GOOS: "windows"}.OpenFile(`C:\Users\me\R&D\config.json`),
			want: Command{
				Name:    "cmd",
				Args:    []string{"/c", "start", "", `C:\Users\me\R&D\config.json`},
				CmdLine: `cmd /c start "" "C:\Users\me\R&D\config.json"`,
			},
		},
		{
			name: "darwin terminal",
			got:  Platform{GOOS: "darwin"}.TerminalAt("/Users/me/app"),
			want: Command{Name: "osascript", Args: []string{"-e", `tell application "Terminal" to do script "cd /Users/me/app"`}, Dir: "/Users/me/app"},
		},
		{
			name: "darwin app",
			got:  Platform{GOOS: "darwin"}.OpenApp(models.ToolDBeaver),
			want: Command{Name: "open", Args: []string{"-a", "DBeaver"}},
		},
		{
			name: "linux open file",
			got:  Platform{GOOS: "linux"}.OpenFile("/tmp/config.json"),
			want: Command{Name: "xdg-open", Args: []string{"/tmp/config.json"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestWindowsCommandLines(t *testing.T) {
	// Windows commands carry a raw command line; the script must reach cmd /k
	// with its own quotes and operators untouched.
	c := Platform{GOOS: "windows"}.CommandAt(`C:\p`, `cd "sub dir" && npm i`)
	assert.Equal(t, `cmd /c start "" cmd /k "cd "sub dir" && npm i"`, c.CmdLine)
	assert.NotContains(t, c.CmdLine, `\"`)
	assert.Equal(t, c.CmdLine, c.String())
}

func TestCmdEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `start "" x`, want: `start "" x`},
		{in: `start "" a & b`, want: `start "" a ^& b`},
		{in: `cmd /k "a && (b | c)"`, want: `cmd /k "a && (b | c)"`},
		{in: `echo "a" > out`, want: `echo "a" ^> out`},
		{in: `x ^ y`, want: `x ^^ y`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cmdEscape(tt.in))
		})
	}
}

func TestArgvQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `make`, want: `"make"`},
		{in: `say "hi"`, want: `"say \"hi\""`},
		{in: `C:\dir\`, want: `"C:\dir\\"`},
		{in: `a\"b`, want: `"a\\\"b"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, argvQuote(tt.in))
		})
	}
}

func TestOpenEditorFallsBackOnlyWhenSpawnFails(t *testing.T) {
	r := &recorder{}
	o := newTestOS("linux", r)
	require.NoError(t, o.OpenEditor("/srv"))
	require.Len(t, r.calls, 1)
	assert.Equal(t, DefaultEditor, r.calls[0].Name)

	r = &recorder{fail: map[string]error{DefaultEditor: errors.New("not found")}}
	o = newTestOS("linux", r)
	require.NoError(t, o.OpenEditor("/srv"))
	require.Len(t, r.calls, 2)
	assert.Equal(t, DefaultFallbackEditor, r.calls[1].Name)

	r = &recorder{fail: map[string]error{
		DefaultEditor:         errors.New("not found"),
		DefaultFallbackEditor: errors.New("not found"),
	}}
	o = newTestOS("linux", r)
	err := o.OpenEditor("/srv")
	assert.ErrorIs(t, err, ErrEditorUnavailable)
	assert.Contains(t, err.Error(), "/srv")
}

func TestLaunchFailureKinds(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{fail: map[string]error{"gnome-terminal": boom}}
	o := newTestOS("linux", r)

	err := o.OpenTerminal("/srv")
	assert.ErrorIs(t, err, ErrTerminalLaunchFailed)
	assert.ErrorIs(t, err, boom)

	err = o.RunCommand("/srv", "npm start")
	assert.ErrorIs(t, err, ErrCommandLaunchFailed)
	assert.Contains(t, err.Error(), "npm start")

	err = o.RunInSubsystem("/srv", "make")
	assert.ErrorIs(t, err, ErrSubsystemLaunchFailed)
}

func TestOpenTool(t *testing.T) {
	t.Run("darwin opens by application name", func(t *testing.T) {
		r := &recorder{}
		require.NoError(t, newTestOS("darwin", r).OpenTool(models.ToolPostman))
		assert.Equal(t, []Command{{Name: "open", Args: []string{"-a", "Postman"}}}, r.calls)
	})

	t.Run("windows falls back to the uri scheme", func(t *testing.T) {
		res := NewResolver("windows", nil)
		res.exists = func(string) bool { return false }
		res.lookPath = func(string) (string, error) { return "", errors.New("missing") }

		r := &recorder{fail: map[string]error{"Postman.exe": errors.New("missing")}}
		require.NoError(t, newTestOS("windows", r, WithResolver(res)).OpenTool(models.ToolPostman))
		require.Len(t, r.calls, 2)
		assert.Equal(t, []string{"/c", "start", "", "postman:"}, r.calls[1].Args)
	})

	t.Run("linux failure", func(t *testing.T) {
		res := NewResolver("linux", nil)
		res.exists = func(string) bool { return false }
		res.lookPath = func(string) (string, error) { return "", errors.New("missing") }

		r := &recorder{fail: map[string]error{"dbeaver": errors.New("missing")}}
		err := newTestOS("linux", r, WithResolver(res)).OpenTool(models.ToolDBeaver)
		assert.ErrorIs(t, err, ErrToolLaunchFailed)
	})
}

func TestResolverFirstExistingCandidateWins(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second")
	third := filepath.Join(dir, "third")
	require.NoError(t, os.WriteFile(second, nil, 0o755))
	require.NoError(t, os.WriteFile(third, nil, 0o755))

	res := NewResolver("linux", map[models.Tool][]string{
		models.ToolPostman: {filepath.Join(dir, "first"), second, third},
	})
	res.lookPath = func(string) (string, error) { return "", errors.New("missing") }

	path, found := res.Resolve(models.ToolPostman)
	assert.True(t, found)
	assert.Equal(t, second, path)
}

func TestResolverFallsBackToBareName(t *testing.T) {
	res := NewResolver("linux", map[models.Tool][]string{models.ToolDBeaver: {"/nonexistent/dbeaver"}})
	res.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

	path, found := res.Resolve(models.ToolDBeaver)
	assert.True(t, found)
	assert.Equal(t, "/usr/bin/dbeaver", path)

	res.lookPath = func(string) (string, error) { return "", errors.New("missing") }
	path, found = res.Resolve(models.ToolDBeaver)
	assert.False(t, found)
	assert.Equal(t, "dbeaver", path)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("LAUNCHER_TEST_USER", "ana")
	assert.Equal(t, `C:\Users\ana\AppData`, ExpandPath(`C:\Users\%LAUNCHER_TEST_USER%\AppData`))
	assert.Equal(t, "/home/ana/bin", ExpandPath("/home/$LAUNCHER_TEST_USER/bin"))
	assert.Equal(t, `%LAUNCHER_UNSET_VAR%`, ExpandPath(`%LAUNCHER_UNSET_VAR%`))
}
