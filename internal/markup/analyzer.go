// # internal/markup/analyzer.go
package markup

import (
	"context"
	"strings"
	"time"

	"shroud/internal/analysis"
	"shroud/internal/diag"
	"shroud/internal/model"
	"shroud/internal/refs"
	"shroud/internal/shared/observability"
)

// Authority is the slice of the naming authority the analyzer drives.
type Authority interface {
	RegisterReference(sym model.Symbol, r *refs.Reference)
	Pin(sym model.Symbol)
	FreshName(mode model.RenameMode) string
}

// Framework member names recognized by the analysis pass.
const (
	bindingTypeName       = "System.Windows.Data.Binding"
	dependencyRegistrar   = "System.Windows.DependencyProperty"
	eventRegistrar        = "System.Windows.EventManager"
	registerNormal        = "Register"
	registerAttached      = "RegisterAttached"
	registerRoutedEvent   = "RegisterRoutedEvent"
	constructorMemberName = ".ctor"
)

// Analyzer discovers markup-related symbol and document references. It is
// the explicit per-run context for markup state: decoded documents and
// document-name references live here, keyed by module, created at analysis
// start and discarded after commit.
type Analyzer struct {
	actx   *analysis.Context
	auth   Authority
	codec  Codec
	tracer analysis.TraceService
	sink   diag.Sink

	docs     map[*model.Module]map[string]*Document
	nameRefs map[*model.Module]map[string][]*refs.Reference
}

func NewAnalyzer(actx *analysis.Context, auth Authority, codec Codec, tracer analysis.TraceService, sink diag.Sink) *Analyzer {
	if sink == nil {
		sink = diag.Nop{}
	}
	if tracer == nil {
		tracer = analysis.StackTracer{}
	}
	return &Analyzer{
		actx:     actx,
		auth:     auth,
		codec:    codec,
		tracer:   tracer,
		sink:     sink,
		docs:     make(map[*model.Module]map[string]*Document),
		nameRefs: make(map[*model.Module]map[string][]*refs.Reference),
	}
}

// AnalyzeModule runs the instruction-scan pass over every method body of
// the module. Cancellation is checked at type boundaries.
func (a *Analyzer) AnalyzeModule(ctx context.Context, m *model.Module) error {
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("markup").Observe(time.Since(start).Seconds())
	}()

	for _, t := range m.AllTypes() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, method := range t.Methods {
			a.analyzeMethod(m, method)
		}
	}
	return nil
}

func (a *Analyzer) analyzeMethod(m *model.Module, method *model.MethodDef) {
	traceWarned := false
	for i, ins := range method.Body {
		if lit, ok := ins.String(); ok {
			a.analyzeLiteral(m, ins, lit)
			a.analyzeBindingCtor(method, i, lit)
			continue
		}

		mr := ins.MemberRef()
		if mr == nil || (ins.Op != model.Call && ins.Op != model.Callvirt) {
			continue
		}
		declaring := ""
		if mr.Declaring != nil {
			declaring = model.PeelSig(mr.Declaring).SigName()
		}
		switch {
		case declaring == dependencyRegistrar && (mr.Name == registerNormal || mr.Name == registerAttached):
			a.analyzeRegistration(method, i, mr.Name == registerAttached, false, &traceWarned)
		case declaring == eventRegistrar && mr.Name == registerRoutedEvent:
			a.analyzeRegistration(method, i, false, true, &traceWarned)
		}
	}
}

// analyzeLiteral registers a document-name reference for a literal
// resource path. Literals naming an assembly outside the protected set are
// left untouched.
func (a *Analyzer) analyzeLiteral(m *model.Module, ins *model.Instruction, lit string) {
	if !HasMarkupExt(lit) {
		return
	}
	u, ok := ParseResourceURI(lit)
	if !ok {
		return
	}

	target := m
	if u.Assembly != "" && !strings.EqualFold(u.Assembly, m.Name) {
		target = a.actx.FindModule(u.Assembly)
		if target == nil {
			return
		}
	}

	decoded := DecodePath(u.Path)
	ref := &refs.Reference{
		Kind:      refs.MarkupString,
		Instr:     ins,
		PrefixLen: len(lit) - len(u.Path),
	}

	// The real entry is discovered lazily, so the reference is registered
	// under both extension variants.
	stem := decoded[:len(decoded)-len(extCompiled)]
	for _, ext := range []string{extCompiled, extSource} {
		a.addNameRef(target, stem+ext, ref)
	}
	observability.ReferencesRegistered.WithLabelValues(ref.Kind.String()).Inc()
}

// analyzeBindingCtor pins a property used as a data-binding string key: a
// literal path argument immediately followed by the binding-description
// constructor. Such keys cannot track a rename.
func (a *Analyzer) analyzeBindingCtor(method *model.MethodDef, index int, lit string) {
	next := index + 1
	if next >= len(method.Body) {
		return
	}
	ins := method.Body[next]
	if ins.Op != model.Newobj {
		return
	}
	mr := ins.MemberRef()
	if mr == nil || mr.Name != constructorMemberName || mr.Declaring == nil {
		return
	}
	if model.PeelSig(mr.Declaring).SigName() != bindingTypeName {
		return
	}

	name := lit
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	for _, mod := range a.actx.Modules {
		for _, t := range mod.AllTypes() {
			if p := t.FindProperty(name); p != nil {
				a.auth.Pin(p)
				for _, acc := range p.Accessors() {
					a.auth.Pin(acc)
				}
			}
		}
	}
}

// analyzeRegistration recovers the symbolic name argument of a framework
// registration call and pins the accessors the framework will look up by
// that name. The literal is not necessarily adjacent to the call, so it is
// recovered by a backward data-flow trace.
func (a *Analyzer) analyzeRegistration(method *model.MethodDef, callIndex int, attached, routedEvent bool, warned *bool) {
	lit, ok := a.traceNameLiteral(method, callIndex)
	if !ok {
		observability.TraceFailures.Inc()
		if !*warned {
			*warned = true
			a.sink.Warn(diag.CategoryRegistrationName, "cannot recover registration name",
				"method", method.FullName())
		}
		return
	}

	owner := method.DeclaringType
	switch {
	case routedEvent:
		e := owner.FindEvent(lit)
		if e == nil {
			a.sink.Warn(diag.CategoryRegistrationAccessor, "no event for routed-event registration",
				"method", method.FullName(), "event", lit)
			return
		}
		a.auth.Pin(e)
		for _, acc := range e.Accessors() {
			a.auth.Pin(acc)
		}

	case attached:
		getter := owner.FindMethod("Get" + lit)
		setter := owner.FindMethod("Set" + lit)
		if getter == nil && setter == nil {
			a.sink.Warn(diag.CategoryRegistrationAccessor, "no accessors for attached registration",
				"method", method.FullName(), "name", lit)
			return
		}
		if getter != nil {
			a.auth.Pin(getter)
		}
		if setter != nil {
			a.auth.Pin(setter)
		}

	default:
		p := owner.FindProperty(lit)
		if p == nil {
			a.sink.Warn(diag.CategoryRegistrationAccessor, "no property for registration",
				"method", method.FullName(), "property", lit)
			return
		}
		a.auth.Pin(p)
		for _, acc := range p.Accessors() {
			a.auth.Pin(acc)
		}
	}
}

func (a *Analyzer) addNameRef(m *model.Module, name string, r *refs.Reference) {
	byName, ok := a.nameRefs[m]
	if !ok {
		byName = make(map[string][]*refs.Reference)
		a.nameRefs[m] = byName
	}
	key := strings.ToLower(name)
	byName[key] = append(byName[key], r)
}

// NameReferences returns the document-name references registered for a
// module under the given logical name, both extension variants included.
func (a *Analyzer) NameReferences(m *model.Module, name string) []*refs.Reference {
	byName := a.nameRefs[m]
	if byName == nil {
		return nil
	}
	key := strings.ToLower(name)
	out := append([]*refs.Reference(nil), byName[key]...)
	alt := strings.ToLower(SwapExt(name))
	if alt != key {
		for _, r := range byName[alt] {
			if !contains(out, r) {
				out = append(out, r)
			}
		}
	}
	return out
}

func contains(list []*refs.Reference, r *refs.Reference) bool {
	for _, x := range list {
		if x == r {
			return true
		}
	}
	return false
}
