package models

// OptionType is the wire discriminator of an option.
type OptionType string

const (
	OptionTypeGroup      OptionType = "options"
	OptionTypeExecutable OptionType = "execute"
)

// Option is a node in a project's option tree: either a *Group or an *Executable.
type Option interface {
	Type() OptionType
	isOption()
}

// Group is a navigable sub-tree. It cannot be executed directly.
type Group struct {
	Options *OptionNode
}

// Executable is a leaf carrying the ordered actions run when it is selected.
type Executable struct {
	Actions []Action
}

func (*Group) isOption()      {}
func (*Executable) isOption() {}

func (*Group) Type() OptionType      { return OptionTypeGroup }
func (*Executable) Type() OptionType { return OptionTypeExecutable }

// NewGroup returns a group wrapping node, allocating an empty node when nil.
func NewGroup(node *OptionNode) *Group {
	if node == nil {
		node = NewOptionNode()
	}
	return &Group{Options: node}
}

// NewExecutable returns a leaf running actions in order.
func NewExecutable(actions ...Action) *Executable {
	return &Executable{Actions: actions}
}

// OptionNode maps option labels to options, keeping insertion order.
type OptionNode struct {
	labels  []string
	options map[string]Option
}

// NewOptionNode creates an empty node.
func NewOptionNode() *OptionNode {
	return &OptionNode{options: make(map[string]Option)}
}

// Set adds or replaces the option under label. Replacing keeps the label's position.
func (n *OptionNode) Set(label string, opt Option) {
	if n.options == nil {
		n.options = make(map[string]Option)
	}
	if _, ok := n.options[label]; !ok {
		n.labels = append(n.labels, label)
	}
	n.options[label] = opt
}

// Get returns the option under label.
func (n *OptionNode) Get(label string) (Option, bool) {
	if n == nil {
		return nil, false
	}
	opt, ok := n.options[label]
	return opt, ok
}

// Labels returns the labels in display order.
func (n *OptionNode) Labels() []string {
	if n == nil {
		return nil
	}
	return append([]string(nil), n.labels...)
}

// Len returns the number of options in the node.
func (n *OptionNode) Len() int {
	if n == nil {
		return 0
	}
	return len(n.labels)
}
