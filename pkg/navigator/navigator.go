// Package navigator implements drill-down navigation through a project's option tree.
package navigator

import (
	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// Navigator hands out navigation states for the projects of one set.
type Navigator struct {
	projects *models.ProjectSet
}

// New creates a navigator over projects.
func New(projects *models.ProjectSet) *Navigator {
	return &Navigator{projects: projects}
}

// Projects returns the underlying project set.
func (n *Navigator) Projects() *models.ProjectSet {
	return n.projects
}

// SelectProject starts a fresh navigation at the root options of the named project.
func (n *Navigator) SelectProject(name string) (*State, error) {
	p, ok := n.projects.Get(name)
	if !ok {
		return nil, &NavError{Op: "select project", Label: name, Err: ErrUnknownProject}
	}
	return &State{project: p, current: p.Options}, nil
}

// Entry is one row of the current option list.
type Entry struct {
	Label string
	Type  models.OptionType
}

type crumb struct {
	node  *models.OptionNode
	label string
}

// State is a single navigation session. It is not safe for concurrent use.
type State struct {
	project *models.Project
	current *models.OptionNode
	stack   []crumb
}

// Project returns the selected project.
func (s *State) Project() *models.Project { return s.project }

// Current returns the option node currently displayed.
func (s *State) Current() *models.OptionNode { return s.current }

// AtRoot reports whether the breadcrumb stack is empty.
func (s *State) AtRoot() bool { return len(s.stack) == 0 }

// Depth returns the number of descents taken from the root.
func (s *State) Depth() int { return len(s.stack) }

// Path returns the labels descended through, root first.
func (s *State) Path() []string {
	out := make([]string, len(s.stack))
	for i, c := range s.stack {
		out[i] = c.label
	}
	return out
}

// Entries lists the current options in display order.
func (s *State) Entries() []Entry {
	labels := s.current.Labels()
	out := make([]Entry, 0, len(labels))
	for _, label := range labels {
		opt, _ := s.current.Get(label)
		out = append(out, Entry{Label: label, Type: opt.Type()})
	}
	return out
}

// Descend enters the group under label.
func (s *State) Descend(label string) error {
	opt, ok := s.current.Get(label)
	if !ok {
		return &NavError{Op: "descend", Label: label, Err: ErrUnknownOption}
	}
	group, ok := opt.(*models.Group)
	if !ok {
		return &NavError{Op: "descend", Label: label, Err: ErrNotAGroup}
	}
	s.stack = append(s.stack, crumb{node: s.current, label: label})
	s.current = group.Options
	return nil
}

// Ascend restores the node that was current before the most recent descent.
func (s *State) Ascend() error {
	if len(s.stack) == 0 {
		return &NavError{Op: "ascend", Err: ErrAtRoot}
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.current = top.node
	return nil
}

// Reset returns to the project's root options.
func (s *State) Reset() {
	s.stack = nil
	s.current = s.project.Options
}

// SelectableActions returns a copy of the actions of the executable under label.
// Groups and unknown labels report false.
func (s *State) SelectableActions(label string) ([]models.Action, bool) {
	opt, ok := s.current.Get(label)
	if !ok {
		return nil, false
	}
	exec, ok := opt.(*models.Executable)
	if !ok {
		return nil, false
	}
	return append([]models.Action(nil), exec.Actions...), true
}

// Walk descends through labels in order, stopping at the first failure.
// On failure the state is restored to where it was before the call.
func (s *State) Walk(labels ...string) error {
	saved := append([]crumb(nil), s.stack...)
	current := s.current
	for _, label := range labels {
		if err := s.Descend(label); err != nil {
			s.stack = saved
			s.current = current
			return err
		}
	}
	return nil
}
