// # internal/rules/rules.go
package rules

import (
	"github.com/gobwas/glob"

	"shroud/internal/core/errors"
	"shroud/internal/model"
)

// Preset is a protection's aggressiveness tier. A rule with tier T enables
// every registered protection whose own tier is non-zero and at most T.
type Preset int

const (
	PresetNone Preset = iota
	PresetMinimum
	PresetNormal
	PresetAggressive
	PresetMaximum
)

// ParsePreset maps a configuration string to a Preset.
func ParsePreset(s string) (Preset, error) {
	switch s {
	case "", "none":
		return PresetNone, nil
	case "minimum":
		return PresetMinimum, nil
	case "normal":
		return PresetNormal, nil
	case "aggressive":
		return PresetAggressive, nil
	case "maximum":
		return PresetMaximum, nil
	}
	return PresetNone, errors.Newf(errors.CodeConfig, "unknown preset %q", s)
}

type Action int

const (
	ActionAdd Action = iota
	ActionRemove
)

// Entry is one explicit protection adjustment carried by a rule.
type Entry struct {
	ID     string
	Params model.Params
	Action Action
}

// Rule pairs a symbol predicate with a settings effect. Rules are evaluated
// in declaration order against every discovered symbol, so predicates must
// stay cheap: a compiled glob over the full name plus optional kind and
// attribute filters.
type Rule struct {
	raw      string
	pattern  glob.Glob
	Kinds    []model.SymbolKind
	AttrName string
	Preset   Preset
	Inherit  bool
	Entries  []Entry
}

// NewRule compiles the pattern eagerly; a malformed pattern is a
// configuration error.
func NewRule(pattern string, preset Preset, inherit bool, entries []Entry) (*Rule, error) {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeConfig, "malformed rule pattern"), errors.CtxRule, pattern)
	}
	return &Rule{raw: pattern, pattern: g, Preset: preset, Inherit: inherit, Entries: entries}, nil
}

func (r *Rule) Pattern() string { return r.raw }

// Match evaluates the rule's predicate against a symbol.
func (r *Rule) Match(sym model.Symbol) bool {
	if !r.pattern.Match(sym.FullName()) {
		return false
	}
	if len(r.Kinds) > 0 {
		ok := false
		for _, k := range r.Kinds {
			if sym.Kind() == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if r.AttrName != "" && !hasAttribute(sym, r.AttrName) {
		return false
	}
	return true
}

func hasAttribute(sym model.Symbol, name string) bool {
	var attrs []*model.Attribute
	switch s := sym.(type) {
	case *model.TypeDef:
		attrs = s.Attrs
	case *model.MethodDef:
		attrs = s.Attrs
	case *model.FieldDef:
		attrs = s.Attrs
	case *model.PropertyDef:
		attrs = s.Attrs
	case *model.EventDef:
		attrs = s.Attrs
	}
	for _, a := range attrs {
		if a.Type != nil && a.Type.SigName() == name {
			return true
		}
	}
	return false
}
