package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// Severity grades a doctor finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding of Check.
type Problem struct {
	Severity Severity
	Project  string
	Option   string
	Message  string
}

func (p Problem) String() string {
	where := p.Project
	if p.Option != "" {
		where += " > " + p.Option
	}
	return fmt.Sprintf("[%s] %s: %s", p.Severity, where, p.Message)
}

// Check inspects every project concurrently: structural validity, base and
// action directories, and whether the referenced tools can be found.
func (s *Service) Check(ctx context.Context) ([]Problem, error) {
	projects := s.Projects()

	var (
		mu       sync.Mutex
		problems []Problem
	)
	report := func(p Problem) {
		mu.Lock()
		problems = append(problems, p)
		mu.Unlock()
	}

	if err := projects.Validate(); err != nil {
		report(Problem{Severity: SeverityError, Project: "*", Message: err.Error()})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range projects.Projects() {
		g.Go(func() error {
			return s.checkProject(ctx, p, report)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Project != problems[j].Project {
			return problems[i].Project < problems[j].Project
		}
		return problems[i].Option < problems[j].Option
	})
	return problems, nil
}

func (s *Service) checkProject(ctx context.Context, p *models.Project, report func(Problem)) error {
	if _, err := os.Stat(p.Path); err != nil {
		report(Problem{Severity: SeverityError, Project: p.Name, Message: fmt.Sprintf("base path %s does not exist", p.Path)})
		return nil
	}

	seenTools := map[models.Tool]bool{}
	var walk func(prefix string, node *models.OptionNode) error
	walk = func(prefix string, node *models.OptionNode) error {
		for _, label := range node.Labels() {
			if err := ctx.Err(); err != nil {
				return err
			}
			at := label
			if prefix != "" {
				at = prefix + " > " + label
			}
			opt, _ := node.Get(label)
			switch o := opt.(type) {
			case *models.Group:
				if err := walk(at, o.Options); err != nil {
					return err
				}
			case *models.Executable:
				for i, a := range o.Actions {
					switch act := a.(type) {
					case models.PathAction:
						full := filepath.Join(p.Path, act.RelativePath())
						if _, err := os.Stat(full); err != nil {
							report(Problem{
								Severity: SeverityError,
								Project:  p.Name,
								Option:   at,
								Message:  fmt.Sprintf("action %d: path %s does not exist", i+1, full),
							})
						}
					case models.OpenTool:
						// macOS opens applications by name, nothing to resolve.
						if s.platform.GOOS == "darwin" || seenTools[act.Tool] {
							continue
						}
						seenTools[act.Tool] = true
						if _, found := s.resolver.Resolve(act.Tool); !found {
							report(Problem{
								Severity: SeverityWarning,
								Project:  p.Name,
								Option:   at,
								Message:  fmt.Sprintf("%s not found in known locations or PATH", act.Tool),
							})
						}
					}
				}
			}
		}
		return nil
	}
	return walk("", p.Options)
}
