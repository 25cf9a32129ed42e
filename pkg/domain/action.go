package domain

// Role classifies an action by the shape it imposes on its owning node.
type Role string

const (
	// RoleTerminal actions perform an effect and own no children.
	RoleTerminal Role = "terminal"
	// RoleConditional actions test agent/world state and select one of two children.
	RoleConditional Role = "conditional"
)

// KindForward is the terminal kind used by a default tree.
const KindForward = "forward"

// DefaultAction is the root action of a freshly constructed tree.
var DefaultAction = Terminal(KindForward)

// Action is the behaviour held by a tree node.
// It is a plain value: two actions are equal when kind and role match.
// The role never changes for a given value; mutation replaces the whole action.
type Action struct {
	Kind string `json:"kind" yaml:"kind"`
	Role Role   `json:"role" yaml:"role"`
}

// Terminal returns a terminal action of the given kind.
func Terminal(kind string) Action {
	return Action{Kind: kind, Role: RoleTerminal}
}

// Conditional returns a conditional action of the given kind.
func Conditional(kind string) Action {
	return Action{Kind: kind, Role: RoleConditional}
}

// IsConditional reports whether the action selects between two branches.
func (a Action) IsConditional() bool {
	return a.Role == RoleConditional
}

// Arity is the number of children a fully constructed node holding a needs.
func (a Action) Arity() int {
	if a.IsConditional() {
		return 2
	}
	return 0
}

func (a Action) String() string {
	if a.IsConditional() {
		return a.Kind + "?"
	}
	return a.Kind
}
