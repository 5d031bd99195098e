// # internal/renamer/service.go
package renamer

import (
	"context"

	"shroud/internal/diag"
	"shroud/internal/model"
	"shroud/internal/refs"
	"shroud/internal/shared/observability"
)

// ProtectionRename is the protection id gating the rename pass. A symbol is
// renamed only when its resolved settings carry this id.
const ProtectionRename = "rename"

// ParamMode is the rename protection's mode parameter.
const ParamMode = "mode"

// RenamedSymbol is one committed rename, kept for the persisted rename map.
type RenamedSymbol struct {
	Module  string
	Kind    model.SymbolKind
	OldName string
	NewName string
}

// Service owns the reference registry and drives the rename commit
// protocol. It implements the naming-authority surface the analysis passes
// consume: Pin, ReduceMode and RegisterReference.
type Service struct {
	gen     NameGenerator
	sink    diag.Sink
	refsBy  map[model.Symbol][]*refs.Reference
	renamed map[model.Symbol]string
	log     []RenamedSymbol
}

func NewService(gen NameGenerator, sink diag.Sink) *Service {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Service{
		gen:     gen,
		sink:    sink,
		refsBy:  make(map[model.Symbol][]*refs.Reference),
		renamed: make(map[model.Symbol]string),
	}
}

// RegisterReference attaches a use-site to its target symbol. The target
// must belong to the analysis universe; callers check scope before
// registering.
func (s *Service) RegisterReference(sym model.Symbol, r *refs.Reference) {
	s.refsBy[sym] = append(s.refsBy[sym], r)
	observability.ReferencesRegistered.WithLabelValues(r.Kind.String()).Inc()
}

// References returns the registered use-sites of a symbol.
func (s *Service) References(sym model.Symbol) []*refs.Reference {
	return s.refsBy[sym]
}

// Pin marks a symbol permanently non-renamable.
func (s *Service) Pin(sym model.Symbol) {
	sym.PreventRename()
	observability.SymbolsPinned.Inc()
}

// ReduceMode weakens a symbol's rename mode to the safer tier.
func (s *Service) ReduceMode(sym model.Symbol, mode model.RenameMode) {
	sym.ReduceRenameMode(mode)
}

// ProposeName asks the naming authority for a candidate name.
func (s *Service) ProposeName(sym model.Symbol, mode model.RenameMode) string {
	return s.gen.Generate(sym, mode)
}

// FreshName proposes a name with no backing symbol.
func (s *Service) FreshName(mode model.RenameMode) string {
	return s.gen.FreshName(mode)
}

// RenameSymbol runs the two-phase commit for one symbol: propose a
// candidate, poll every registered reference, and rewrite everywhere only
// on unanimous acceptance. A symbol is renamed at most once per run.
func (s *Service) RenameSymbol(sym model.Symbol) bool {
	if !sym.CanRename() {
		return false
	}
	if _, done := s.renamed[sym]; done {
		return false
	}
	mode := sym.RenameMode()
	if mode == model.ModeRetain {
		return false
	}

	old := sym.Name()
	candidate := s.gen.Generate(sym, mode)
	if candidate == "" || candidate == old {
		return false
	}

	for _, r := range s.refsBy[sym] {
		if r.CanVeto() && !r.Accept(old, candidate) {
			observability.RenamesRejected.Inc()
			s.sink.Warn(diag.CategoryRenameRejected, "reference vetoed rename",
				"ref", r.Describe(), "kind", sym.Kind().String())
			return false
		}
	}

	for _, r := range s.refsBy[sym] {
		r.Apply(old, candidate)
	}
	sym.SetName(candidate)
	s.renamed[sym] = old
	s.log = append(s.log, RenamedSymbol{
		Module:  sym.Module().Name,
		Kind:    sym.Kind(),
		OldName: old,
		NewName: candidate,
	})
	observability.RenamesCommitted.Inc()
	return true
}

// RenameModule renames every eligible symbol of the module whose resolved
// settings enable the rename protection. Cancellation is checked at symbol
// boundaries; a cancelled run never leaves a symbol half-renamed because
// RenameSymbol commits all-or-nothing.
func (s *Service) RenameModule(ctx context.Context, m *model.Module) error {
	for _, sym := range m.Symbols() {
		if err := ctx.Err(); err != nil {
			return err
		}
		params, ok := sym.Settings()[ProtectionRename]
		if !ok {
			continue
		}
		if ms := params[ParamMode]; ms != "" {
			if mode, err := model.ParseRenameMode(ms); err == nil {
				sym.ReduceRenameMode(mode)
			}
		}
		s.RenameSymbol(sym)
	}
	return nil
}

// Renamed returns every rename committed during this run, in commit order.
func (s *Service) Renamed() []RenamedSymbol {
	out := make([]RenamedSymbol, len(s.log))
	copy(out, s.log)
	return out
}
