package models

import (
	"errors"
	"fmt"
)

// Project is a named unit with a base filesystem path and a tree of options.
type Project struct {
	Name    string
	Path    string
	Options *OptionNode
}

// ProjectSet holds projects keyed by unique name in insertion order.
type ProjectSet struct {
	names    []string
	projects map[string]*Project
}

// ErrDuplicateProject is returned by Add when the name is already taken.
var ErrDuplicateProject = errors.New("duplicate project")

// NewProjectSet creates an empty set.
func NewProjectSet() *ProjectSet {
	return &ProjectSet{projects: make(map[string]*Project)}
}

// Add appends p to the set.
func (s *ProjectSet) Add(p *Project) error {
	if s.projects == nil {
		s.projects = make(map[string]*Project)
	}
	if _, ok := s.projects[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProject, p.Name)
	}
	if p.Options == nil {
		p.Options = NewOptionNode()
	}
	s.names = append(s.names, p.Name)
	s.projects[p.Name] = p
	return nil
}

// Get returns the project called name.
func (s *ProjectSet) Get(name string) (*Project, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.projects[name]
	return p, ok
}

// Names returns project names in display order.
func (s *ProjectSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Projects returns the projects in display order.
func (s *ProjectSet) Projects() []*Project {
	if s == nil {
		return nil
	}
	out := make([]*Project, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.projects[name])
	}
	return out
}

// Len returns the number of projects.
func (s *ProjectSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Validate checks structural rules the decoder cannot express on its own.
func (s *ProjectSet) Validate() error {
	var errs []error
	for _, p := range s.Projects() {
		if p.Name == "" {
			errs = append(errs, errors.New("project with empty name"))
		}
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("project %q: empty path", p.Name))
		}
		errs = append(errs, validateNode(p.Name, p.Options)...)
	}
	return errors.Join(errs...)
}

func validateNode(where string, node *OptionNode) []error {
	var errs []error
	for _, label := range node.Labels() {
		opt, _ := node.Get(label)
		at := where + " > " + label
		if label == "" {
			errs = append(errs, fmt.Errorf("%s: empty option label", where))
		}
		switch o := opt.(type) {
		case *Group:
			if o.Options == nil {
				errs = append(errs, fmt.Errorf("%s: group without options", at))
				continue
			}
			errs = append(errs, validateNode(at, o.Options)...)
		case *Executable:
			for i, a := range o.Actions {
				if t, ok := a.(OpenTool); ok && t.Tool != ToolPostman && t.Tool != ToolDBeaver {
					errs = append(errs, fmt.Errorf("%s: action %d: unknown tool %q", at, i, t.Tool))
				}
			}
		}
	}
	return errs
}
