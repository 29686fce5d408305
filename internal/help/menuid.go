package help

import "strings"

// MenuNamespace prefixes the custom ID of every help picker so the
// transport can route selections back here.
const MenuNamespace = "help"

// Scope says which view produced a picker.
type Scope string

const (
	ScopeMain Scope = "main" // category picker on the overview
	ScopeType Scope = "type" // command picker on a category view
)

// MenuID encodes a picker identifier.
func MenuID(scope Scope) string {
	return MenuNamespace + ":" + string(scope)
}

// ParseMenuID decodes a picker identifier. Foreign or stale identifiers
// report false.
func ParseMenuID(id string) (Scope, bool) {
	rest, ok := strings.CutPrefix(id, MenuNamespace+":")
	if !ok {
		return "", false
	}
	switch s := Scope(rest); s {
	case ScopeMain, ScopeType:
		return s, true
	default:
		return "", false
	}
}

// Owns reports whether id belongs to the help namespace at all.
func Owns(id string) bool {
	return strings.HasPrefix(id, MenuNamespace+":")
}
