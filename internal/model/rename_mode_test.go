package model

import "testing"

func TestReduceMode_NeverStrengthens(t *testing.T) {
	modes := []RenameMode{ModeCompact, ModeASCII, ModeLetters, ModeRetain}
	for _, a := range modes {
		for _, b := range modes {
			got := ReduceMode(a, b)
			if got < a || got < b {
				t.Errorf("ReduceMode(%v, %v) = %v strengthened a mode", a, b, got)
			}
		}
	}
}

func TestReduceMode_Idempotent(t *testing.T) {
	for _, m := range []RenameMode{ModeCompact, ModeASCII, ModeLetters, ModeRetain} {
		if ReduceMode(m, m) != m {
			t.Errorf("ReduceMode(%v, %v) != %v", m, m, m)
		}
	}
}

func TestReduceMode_Lattice(t *testing.T) {
	modes := []RenameMode{ModeCompact, ModeASCII, ModeLetters, ModeRetain}
	safer := func(a, b RenameMode) RenameMode {
		if a > b {
			return a
		}
		return b
	}
	for _, m := range modes {
		for _, a := range modes {
			for _, b := range modes {
				left := ReduceMode(ReduceMode(m, a), b)
				right := ReduceMode(m, safer(a, b))
				if left != right {
					t.Errorf("reduce(reduce(%v,%v),%v) = %v, want %v", m, a, b, left, right)
				}
			}
		}
	}
}

func TestSymbol_ReduceRenameMode(t *testing.T) {
	m := NewModule("App")
	typ := m.AddType("App", "Widget")

	typ.ReduceRenameMode(ModeLetters)
	if typ.RenameMode() != ModeLetters {
		t.Fatalf("expected letters, got %v", typ.RenameMode())
	}
	// Reducing back toward an aggressive tier must not strengthen.
	typ.ReduceRenameMode(ModeCompact)
	if typ.RenameMode() != ModeLetters {
		t.Errorf("reduction strengthened mode to %v", typ.RenameMode())
	}
}

func TestParseRenameMode(t *testing.T) {
	for s, want := range map[string]RenameMode{
		"compact": ModeCompact,
		"ascii":   ModeASCII,
		"letters": ModeLetters,
		"retain":  ModeRetain,
	} {
		got, err := ParseRenameMode(s)
		if err != nil || got != want {
			t.Errorf("ParseRenameMode(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseRenameMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
