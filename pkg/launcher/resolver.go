package launcher

import (
	"os"
	"os/exec"
	"regexp"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// Resolver finds the executable of a named tool by probing candidate locations.
type Resolver struct {
	goos       string
	candidates map[models.Tool][]string
	exists     func(string) bool
	lookPath   func(string) (string, error)
}

// NewResolver creates a resolver. Tools missing from candidates fall back to
// DefaultCandidates for goos.
func NewResolver(goos string, candidates map[models.Tool][]string) *Resolver {
	merged := DefaultCandidates(goos)
	for tool, list := range candidates {
		if len(list) > 0 {
			merged[tool] = list
		}
	}
	return &Resolver{
		goos:       goos,
		candidates: merged,
		exists:     fileExists,
		lookPath:   exec.LookPath,
	}
}

// Candidates returns the probe list for tool.
func (r *Resolver) Candidates(tool models.Tool) []string {
	return append([]string(nil), r.candidates[tool]...)
}

// Resolve returns the first existing candidate, then the bare name if it is on
// PATH. When nothing is found it returns the bare name and false so callers can
// still attempt a launch by name.
func (r *Resolver) Resolve(tool models.Tool) (string, bool) {
	for _, candidate := range r.candidates[tool] {
		path := ExpandPath(candidate)
		if r.exists(path) {
			return path, true
		}
	}
	bare := BareName(r.goos, tool)
	if path, err := r.lookPath(bare); err == nil {
		return path, true
	}
	return bare, false
}

// BareName is the executable name of tool on goos.
func BareName(goos string, tool models.Tool) string {
	switch {
	case goos == "windows" && tool == models.ToolPostman:
		return "Postman.exe"
	case goos == "windows" && tool == models.ToolDBeaver:
		return "dbeaver.exe"
	case tool == models.ToolDBeaver:
		return "dbeaver"
	default:
		return "postman"
	}
}

// DefaultCandidates lists the usual install locations of each tool.
func DefaultCandidates(goos string) map[models.Tool][]string {
	switch goos {
	case "windows":
		return map[models.Tool][]string{
			models.ToolPostman: {
				`C:\Users\%USERNAME%\AppData\Local\Postman\Postman.exe`,
				`C:\Program Files\Postman\Postman.exe`,
				`C:\Program Files (x86)\Postman\Postman.exe`,
			},
			models.ToolDBeaver: {
				`C:\Users\%USERNAME%\AppData\Local\DBeaver\dbeaver.exe`,
				`C:\Program Files\DBeaver\dbeaver.exe`,
				`C:\Program Files (x86)\DBeaver\dbeaver.exe`,
				`C:\Users\%USERNAME%\AppData\Roaming\DBeaverData\workspace6\General\.dbeaver\dbeaver.exe`,
			},
		}
	case "linux":
		return map[models.Tool][]string{
			models.ToolPostman: {"/snap/bin/postman", "/opt/Postman/Postman", "$HOME/.local/bin/postman"},
			models.ToolDBeaver: {"/snap/bin/dbeaver-ce", "/usr/share/dbeaver-ce/dbeaver", "/opt/dbeaver/dbeaver"},
		}
	default:
		return map[models.Tool][]string{}
	}
}

var windowsVar = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

// ExpandPath expands both %VAR% and $VAR references from the environment.
func ExpandPath(p string) string {
	p = windowsVar.ReplaceAllStringFunc(p, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return m
	})
	return os.ExpandEnv(p)
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
