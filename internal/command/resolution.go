package command

// Kind tags the outcome of a lookup.
type Kind uint8

const (
	KindNotFound Kind = iota
	KindFound
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindGroup:
		return "group"
	default:
		return "not-found"
	}
}

// Resolution is exactly one of a command, a group, or nothing.
type Resolution struct {
	kind  Kind
	cmd   *Command
	group *Group
}

// Found wraps a single command.
func Found(cmd *Command) Resolution { return Resolution{kind: KindFound, cmd: cmd} }

// FoundGroup wraps a group.
func FoundGroup(g *Group) Resolution { return Resolution{kind: KindGroup, group: g} }

// NotFound is the empty resolution.
func NotFound() Resolution { return Resolution{} }

func (r Resolution) Kind() Kind { return r.kind }

// Command is set only when Kind is KindFound.
func (r Resolution) Command() *Command { return r.cmd }

// Group is set only when Kind is KindGroup.
func (r Resolution) Group() *Group { return r.group }

// Type is the category of whatever was found.
func (r Resolution) Type() Type {
	switch r.kind {
	case KindFound:
		return r.cmd.Type
	case KindGroup:
		return r.group.Header.Type
	default:
		return TypeUnknown
	}
}
