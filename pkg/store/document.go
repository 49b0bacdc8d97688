package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// object is a decoded mapping that remembers key order. Values are string,
// float64, bool, nil, []any or *object.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) str(key string) (string, error) {
	v, ok := o.values[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// toProjectSet maps the generic document onto the project model.
func toProjectSet(doc any) (*models.ProjectSet, error) {
	root, ok := doc.(*object)
	if !ok {
		return nil, fmt.Errorf("top level: expected object, got %T", doc)
	}
	set := models.NewProjectSet()
	for _, name := range root.keys {
		p, err := toProject(name, root.values[name])
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", name, err)
		}
		if err := set.Add(p); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func toProject(name string, v any) (*models.Project, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	path, err := obj.str("path")
	if err != nil {
		return nil, err
	}
	options, err := toOptionNode(obj)
	if err != nil {
		return nil, err
	}
	return &models.Project{Name: name, Path: path, Options: options}, nil
}

func toOptionNode(parent *object) (*models.OptionNode, error) {
	node := models.NewOptionNode()
	raw, ok := parent.get("options")
	if !ok || raw == nil {
		return node, nil
	}
	obj, ok := raw.(*object)
	if !ok {
		return nil, fmt.Errorf("options: expected object, got %T", raw)
	}
	for _, label := range obj.keys {
		opt, err := toOption(obj.values[label])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", label, err)
		}
		node.Set(label, opt)
	}
	return node, nil
}

func toOption(v any) (models.Option, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	typ, err := obj.str("type")
	if err != nil {
		return nil, err
	}
	// Anything but a group is executable, including a missing or unknown type.
	if models.OptionType(typ) == models.OptionTypeGroup {
		inner, err := toOptionNode(obj)
		if err != nil {
			return nil, err
		}
		return models.NewGroup(inner), nil
	}
	actions, err := toActions(obj)
	if err != nil {
		return nil, err
	}
	return models.NewExecutable(actions...), nil
}

func toActions(obj *object) ([]models.Action, error) {
	raw, ok := obj.get("actions")
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("actions: expected array, got %T", raw)
	}
	actions := make([]models.Action, 0, len(list))
	for i, item := range list {
		a, err := toAction(item)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

func toAction(v any) (models.Action, error) {
	obj, ok := v.(*object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	typ, err := obj.str("type")
	if err != nil {
		return nil, err
	}
	path, err := obj.str("path")
	if err != nil {
		return nil, err
	}

	switch models.ActionKind(typ) {
	case models.KindOpenEditor:
		return models.OpenEditor{Path: path}, nil
	case models.KindOpenPostman:
		return models.OpenTool{Tool: models.ToolPostman}, nil
	case models.KindOpenDBeaver:
		return models.OpenTool{Tool: models.ToolDBeaver}, nil
	case models.KindOpenTerminal:
		return models.OpenTerminal{Path: path}, nil
	case models.KindRunCommand:
		command, err := obj.str("command")
		if err != nil {
			return nil, err
		}
		return models.RunCommand{Path: path, Command: command}, nil
	case models.KindRunInSubsystem:
		commands, err := toCommands(obj)
		if err != nil {
			return nil, err
		}
		return models.RunInSubsystem{Path: path, Commands: commands}, nil
	case models.KindWait:
		seconds, err := toSeconds(obj)
		if err != nil {
			return nil, err
		}
		return models.Wait{Seconds: seconds}, nil
	case "":
		return nil, errors.New("missing action type")
	default:
		return nil, fmt.Errorf("unknown action type %q", typ)
	}
}

func toCommands(obj *object) ([]string, error) {
	raw, ok := obj.get("commands")
	if !ok || raw == nil {
		return nil, nil
	}
	switch c := raw.(type) {
	case string:
		return []string{c}, nil
	case []any:
		out := make([]string, 0, len(c))
		for i, item := range c {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("commands[%d]: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("commands: expected string or array, got %T", raw)
	}
}

func toSeconds(obj *object) (float64, error) {
	raw, ok := obj.get("seconds")
	if !ok || raw == nil {
		return models.DefaultWaitSeconds, nil
	}
	seconds, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("seconds: expected number, got %T", raw)
	}
	switch {
	case math.IsNaN(seconds):
		return 0, errors.New("seconds: not a number")
	case seconds < 0:
		return 0, fmt.Errorf("seconds: must not be negative, got %g", seconds)
	case seconds > models.MaxWaitSeconds:
		return 0, fmt.Errorf("seconds: must not exceed %g, got %g", models.MaxWaitSeconds, seconds)
	}
	return seconds, nil
}

// fromProjectSet builds the generic document written to disk.
func fromProjectSet(set *models.ProjectSet) *object {
	root := newObject()
	for _, p := range set.Projects() {
		obj := newObject()
		obj.set("path", p.Path)
		obj.set("options", fromOptionNode(p.Options))
		root.set(p.Name, obj)
	}
	return root
}

func fromOptionNode(node *models.OptionNode) *object {
	out := newObject()
	for _, label := range node.Labels() {
		opt, _ := node.Get(label)
		obj := newObject()
		obj.set("type", string(opt.Type()))
		switch o := opt.(type) {
		case *models.Group:
			obj.set("options", fromOptionNode(o.Options))
		case *models.Executable:
			actions := make([]any, 0, len(o.Actions))
			for _, a := range o.Actions {
				actions = append(actions, fromAction(a))
			}
			obj.set("actions", actions)
		}
		out.set(label, obj)
	}
	return out
}

func fromAction(a models.Action) *object {
	obj := newObject()
	obj.set("type", string(a.Kind()))
	switch v := a.(type) {
	case models.OpenEditor:
		obj.set("path", v.Path)
	case models.OpenTerminal:
		obj.set("path", v.Path)
	case models.RunCommand:
		obj.set("command", v.Command)
		obj.set("path", v.Path)
	case models.RunInSubsystem:
		obj.set("path", v.Path)
		if len(v.Commands) == 1 {
			obj.set("commands", v.Commands[0])
		} else {
			cmds := make([]any, 0, len(v.Commands))
			for _, c := range v.Commands {
				cmds = append(cmds, c)
			}
			obj.set("commands", cmds)
		}
	case models.Wait:
		obj.set("seconds", v.Seconds)
	}
	return obj
}
