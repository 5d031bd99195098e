package model

import "fmt"

// RenameMode is the naming-safety tier used when generating a new name.
// Modes are declared from most aggressive (shortest output) to safest;
// higher values never break more than lower ones.
type RenameMode int

const (
	// ModeCompact produces the shortest possible names, not necessarily
	// valid identifiers.
	ModeCompact RenameMode = iota
	// ModeASCII produces printable ASCII names.
	ModeASCII
	// ModeLetters produces identifier-safe, letters-only names. Symbols
	// that may be looked up reflectively must not go below this tier.
	ModeLetters
	// ModeRetain keeps the original name.
	ModeRetain
)

func (m RenameMode) String() string {
	switch m {
	case ModeCompact:
		return "compact"
	case ModeASCII:
		return "ascii"
	case ModeLetters:
		return "letters"
	case ModeRetain:
		return "retain"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseRenameMode maps a configuration string to a RenameMode.
func ParseRenameMode(s string) (RenameMode, error) {
	switch s {
	case "compact":
		return ModeCompact, nil
	case "ascii":
		return ModeASCII, nil
	case "letters":
		return ModeLetters, nil
	case "retain":
		return ModeRetain, nil
	}
	return ModeRetain, fmt.Errorf("unknown rename mode %q", s)
}

// ReduceMode returns the safer of the two modes. Reduction is monotonic
// and idempotent: it may weaken a mode, never strengthen it.
func ReduceMode(a, b RenameMode) RenameMode {
	if b > a {
		return b
	}
	return a
}
