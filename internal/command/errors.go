package command

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is matched by every DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate command key")
	// ErrMalformedOption is matched by every MalformedOptionError.
	ErrMalformedOption = errors.New("malformed option definition")
)

// DuplicateKeyError reports a name or alias that is already registered.
type DuplicateKeyError struct {
	Key      string
	Scope    string
	Existing string
}

func (e *DuplicateKeyError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s: %q in group %q already used by %q", ErrDuplicateKey, e.Key, e.Scope, e.Existing)
	}
	return fmt.Sprintf("%s: %q already used by %q", ErrDuplicateKey, e.Key, e.Existing)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// MalformedOptionError reports a command definition that cannot be
// displayed or parsed unambiguously.
type MalformedOptionError struct {
	Command string
	Option  string
	Reason  string
}

func (e *MalformedOptionError) Error() string {
	switch {
	case e.Option != "":
		return fmt.Sprintf("%s: command %q option %q: %s", ErrMalformedOption, e.Command, e.Option, e.Reason)
	case e.Command != "":
		return fmt.Sprintf("%s: command %q: %s", ErrMalformedOption, e.Command, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", ErrMalformedOption, e.Reason)
	}
}

func (e *MalformedOptionError) Is(target error) bool { return target == ErrMalformedOption }
