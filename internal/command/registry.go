package command

import (
	"iter"
	"strings"
	"sync"
)

// Group is a named set of subcommands listed under one header command.
type Group struct {
	Header *Command

	members map[string]*Command
	aliases map[string]*Command
	order   []*Command
}

// Name is the group name subcommands are addressed under.
func (g *Group) Name() string { return g.Header.Name }

// Commands returns the members in registration order.
func (g *Group) Commands() []*Command {
	return append([]*Command(nil), g.order...)
}

// Lookup finds a member by name or group-scoped alias.
func (g *Group) Lookup(key string) (*Command, bool) {
	if cmd, ok := g.members[key]; ok {
		return cmd, true
	}
	cmd, ok := g.aliases[key]
	return cmd, ok
}

func (g *Group) add(cmd *Command) error {
	for _, key := range cmd.Keys() {
		if existing, ok := g.members[key]; ok {
			return &DuplicateKeyError{Key: key, Scope: g.Name(), Existing: existing.Name}
		}
		if existing, ok := g.aliases[key]; ok {
			return &DuplicateKeyError{Key: key, Scope: g.Name(), Existing: existing.Name}
		}
	}
	g.members[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		g.aliases[a] = cmd
	}
	g.order = append(g.order, cmd)
	return nil
}

func newGroup(header *Command) *Group {
	return &Group{
		Header:  header,
		members: make(map[string]*Command),
		aliases: make(map[string]*Command),
	}
}

type entry struct {
	cmd   *Command
	group *Group
}

func (e entry) header() *Command {
	if e.group != nil {
		return e.group.Header
	}
	return e.cmd
}

// Registry indexes commands and groups by name and alias. It is written
// during startup and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []entry

	// memberAliases maps subcommand aliases to "group sub". Aliases share
	// one namespace with top-level keys even though they only resolve
	// inside their group.
	memberAliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:       make(map[string]entry),
		memberAliases: make(map[string]string),
	}
}

// Register adds a command. A name of the form "group sub" or "group.sub"
// registers sub as a member of group, creating the group if needed.
func (r *Registry) Register(cmd *Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if group, sub, ok := splitGroupName(cmd.Name); ok {
		member := *cmd
		member.Name = sub
		return r.addToGroup(&Command{Name: group, Type: TypeSubcommandGroup}, &member)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkFree(cmd.Keys()); err != nil {
		return err
	}
	e := entry{cmd: cmd}
	r.index(cmd.Keys(), e)
	return nil
}

// RegisterGroup adds a group with an explicit header and its members.
func (r *Registry) RegisterGroup(header *Command, subs ...*Command) error {
	if err := header.Validate(); err != nil {
		return err
	}
	if len(subs) == 0 {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.createGroup(header)
	}
	for _, sub := range subs {
		if err := sub.Validate(); err != nil {
			return err
		}
		if err := r.addToGroup(header, sub); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) addToGroup(header, sub *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range sub.Aliases {
		if err := r.checkKey(a); err != nil {
			return err
		}
	}

	e, ok := r.entries[header.Name]
	if !ok {
		if err := r.createGroup(header); err != nil {
			return err
		}
		e = r.entries[header.Name]
	}
	if e.group == nil || e.group.Name() != header.Name {
		return &DuplicateKeyError{Key: header.Name, Existing: e.header().Name}
	}
	if err := e.group.add(sub); err != nil {
		return err
	}
	for _, a := range sub.Aliases {
		r.memberAliases[a] = header.Name + " " + sub.Name
	}
	return nil
}

// createGroup expects r.mu to be held.
func (r *Registry) createGroup(header *Command) error {
	if header.Type == TypeUnknown {
		header.Type = TypeSubcommandGroup
	}
	if err := r.checkFree(header.Keys()); err != nil {
		return err
	}
	r.index(header.Keys(), entry{group: newGroup(header)})
	return nil
}

func (r *Registry) checkFree(keys []string) error {
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if err := r.checkKey(key); err != nil {
			return err
		}
		if _, ok := seen[key]; ok {
			return &DuplicateKeyError{Key: key, Existing: keys[0]}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// checkKey expects r.mu to be held.
func (r *Registry) checkKey(key string) error {
	if existing, ok := r.entries[key]; ok {
		return &DuplicateKeyError{Key: key, Existing: existing.header().Name}
	}
	if owner, ok := r.memberAliases[key]; ok {
		return &DuplicateKeyError{Key: key, Existing: owner}
	}
	return nil
}

func (r *Registry) index(keys []string, e entry) {
	for _, key := range keys {
		r.entries[key] = e
	}
	r.order = append(r.order, e)
}

// Resolve looks key up exactly. An empty subKey means none was supplied.
func (r *Registry) Resolve(key, subKey string) Resolution {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return NotFound()
	}

	if e.group == nil {
		if subKey != "" {
			return NotFound()
		}
		return Found(e.cmd)
	}

	if subKey == "" {
		return FoundGroup(e.group)
	}
	if cmd, ok := e.group.Lookup(subKey); ok {
		return Found(cmd)
	}
	return NotFound()
}

// Iterate yields top-level commands and group headers in registration
// order. A nil filter matches everything.
func (r *Registry) Iterate(filter func(*Command) bool) iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		r.mu.RLock()
		snapshot := append([]entry(nil), r.order...)
		r.mu.RUnlock()

		for _, e := range snapshot {
			cmd := e.header()
			if filter != nil && !filter(cmd) {
				continue
			}
			if !yield(cmd) {
				return
			}
		}
	}
}

// OfType is an Iterate filter matching a single category.
func OfType(t Type) func(*Command) bool {
	return func(c *Command) bool { return c.Type == t }
}

// Names returns every top-level name in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, e := range r.order {
		names = append(names, e.header().Name)
	}
	return names
}

// Len is the number of top-level entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Groups returns every registered group in registration order.
func (r *Registry) Groups() []*Group {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var groups []*Group
	for _, e := range r.order {
		if e.group != nil {
			groups = append(groups, e.group)
		}
	}
	return groups
}

func splitGroupName(name string) (group, sub string, ok bool) {
	i := strings.IndexAny(name, " .")
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], strings.TrimSpace(name[i+1:]), true
}
