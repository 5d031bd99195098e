// # internal/scanner/scanner.go
package scanner

import (
	"context"
	"time"

	"shroud/internal/analysis"
	"shroud/internal/diag"
	"shroud/internal/model"
	"shroud/internal/refs"
	"shroud/internal/shared/observability"
)

// Authority is the slice of the naming authority the scanner drives.
type Authority interface {
	RegisterReference(sym model.Symbol, r *refs.Reference)
	ReduceMode(sym model.Symbol, mode model.RenameMode)
}

// Scanner discovers symbol references hidden inside blob-encoded
// signatures and attribute arguments and registers them against the naming
// authority. Scans are read-only; nothing is mutated until commit.
type Scanner struct {
	ctx  *analysis.Context
	auth Authority
	sink diag.Sink
}

func New(actx *analysis.Context, auth Authority, sink diag.Sink) *Scanner {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Scanner{ctx: actx, auth: auth, sink: sink}
}

// ScanModule walks every method's override table and instruction stream,
// then every attribute in the module. Cancellation is checked at type
// boundaries.
func (s *Scanner) ScanModule(ctx context.Context, m *model.Module) error {
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("metadata").Observe(time.Since(start).Seconds())
	}()

	s.scanAttributes(m.Attrs)
	for _, t := range m.AllTypes() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.scanType(t)
	}
	return nil
}

func (s *Scanner) scanType(t *model.TypeDef) {
	s.scanAttributes(t.Attrs)
	for _, f := range t.Fields {
		s.scanAttributes(f.Attrs)
	}
	for _, p := range t.Properties {
		s.scanAttributes(p.Attrs)
	}
	for _, e := range t.Events {
		s.scanAttributes(e.Attrs)
	}
	for _, m := range t.Methods {
		s.scanAttributes(m.Attrs)
		s.scanMethod(m)
	}
}

func (s *Scanner) scanMethod(m *model.MethodDef) {
	for _, ov := range m.Overrides {
		s.registerMemberRef(ov)
	}
	for _, ins := range m.Body {
		mr := ins.MemberRef()
		if mr == nil {
			continue
		}
		s.registerMemberRef(mr)
	}
}

// registerMemberRef tracks a member reference only when it reaches its
// member through a generic instantiation: a direct reference to a
// definition already tracks the rename through symbol identity, and array
// pseudo-accessors carry no renamable identity at all.
func (s *Scanner) registerMemberRef(mr *model.MemberRef) {
	if mr.IsArrayAccessor || mr.Resolved == nil || mr.Declaring == nil {
		return
	}
	inner := model.PeelSig(mr.Declaring)
	if _, ok := inner.(model.GenericInstSig); !ok {
		return
	}

	declaring := declaringType(mr.Resolved)
	if !s.ctx.InScope(declaring) {
		return
	}
	s.auth.RegisterReference(mr.Resolved, &refs.Reference{
		Kind:   refs.DirectMetadata,
		Member: mr,
	})
}

func (s *Scanner) scanAttributes(attrs []*model.Attribute) {
	for _, a := range attrs {
		for _, arg := range a.CtorArgs {
			s.scanArg(arg)
		}
		for _, na := range a.NamedArgs {
			s.scanArg(na.Arg)
			s.registerNamedArg(a, na)
		}
	}
}

// scanArg registers every in-scope type mentioned inside a reflection-Type
// argument and reduces those types to the reflection-safe tier: such names
// may be looked up dynamically and must stay valid identifiers.
func (s *Scanner) scanArg(arg *model.AttrArg) {
	if arg == nil {
		return
	}
	if items, ok := arg.Value.([]*model.AttrArg); ok {
		for _, it := range items {
			s.scanArg(it)
		}
		return
	}
	if !model.IsReflectionType(arg.Type) {
		return
	}
	tv, ok := arg.Value.(*model.TypeValue)
	if !ok {
		return
	}
	model.WalkSigTypes(tv.Sig, func(t *model.TypeDef) {
		if !s.ctx.InScope(t) {
			return
		}
		s.auth.RegisterReference(t, &refs.Reference{
			Kind:      refs.AttributeArgument,
			TypeValue: tv,
		})
		s.auth.ReduceMode(t, model.ModeLetters)
	})
}

// registerNamedArg resolves the field or property behind a named argument
// when the attribute type itself is under protection. Resolution failures
// are reported, not fatal: the argument simply is not tracked.
func (s *Scanner) registerNamedArg(a *model.Attribute, na *model.NamedArg) {
	def, ok := model.PeelSig(a.Type).(model.DefSig)
	if !ok || !s.ctx.InScope(def.Type) {
		return
	}

	var sym model.Symbol
	if na.IsField {
		if f := refs.ResolveField(def.Type, na.Name, na.Arg.Type); f != nil {
			sym = f
		}
	} else {
		if p := refs.ResolveProperty(def.Type, na.Name, na.Arg.Type); p != nil {
			sym = p
		}
	}
	if sym == nil {
		s.sink.Warn(diag.CategoryAttrArgUnresolved, "unresolved attribute argument",
			"attribute", def.Type.FullName(), "argument", na.Name)
		return
	}
	s.auth.RegisterReference(sym, &refs.Reference{
		Kind:     refs.AttributeArgument,
		NamedArg: na,
	})
}

func declaringType(sym model.Symbol) *model.TypeDef {
	switch d := sym.(type) {
	case *model.TypeDef:
		return d
	case *model.MethodDef:
		return d.DeclaringType
	case *model.FieldDef:
		return d.DeclaringType
	case *model.PropertyDef:
		return d.DeclaringType
	case *model.EventDef:
		return d.DeclaringType
	}
	return nil
}
