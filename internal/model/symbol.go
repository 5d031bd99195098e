// # internal/model/symbol.go
package model

type SymbolKind int

const (
	KindType SymbolKind = iota
	KindMethod
	KindField
	KindProperty
	KindEvent
)

func (k SymbolKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindEvent:
		return "event"
	}
	return "unknown"
}

// Params is one protection's parameter table.
type Params map[string]string

// ProtectionSettings maps protection ids to their resolved parameters for
// one symbol.
type ProtectionSettings map[string]Params

func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Symbol is a renamable definition owned by a module. Implementations are
// *TypeDef, *MethodDef, *FieldDef, *PropertyDef and *EventDef; symbols are
// always handled by identity, never copied.
type Symbol interface {
	Name() string
	SetName(name string)
	FullName() string
	Kind() SymbolKind
	Module() *Module

	// CanRename reports whether the symbol is still eligible for renaming.
	CanRename() bool
	// PreventRename marks the symbol permanently non-renamable.
	PreventRename()

	RenameMode() RenameMode
	// ReduceRenameMode weakens the symbol's rename mode to the safer of the
	// current and given modes. It never strengthens.
	ReduceRenameMode(mode RenameMode)

	Settings() ProtectionSettings
	SetSettings(s ProtectionSettings)
}

// symbol carries the state shared by every definition kind.
type symbol struct {
	name     string
	module   *Module
	noRename bool
	mode     RenameMode
	settings ProtectionSettings
}

func (s *symbol) Name() string           { return s.name }
func (s *symbol) SetName(name string)    { s.name = name }
func (s *symbol) Module() *Module        { return s.module }
func (s *symbol) CanRename() bool        { return !s.noRename }
func (s *symbol) PreventRename()         { s.noRename = true }
func (s *symbol) RenameMode() RenameMode { return s.mode }

func (s *symbol) ReduceRenameMode(mode RenameMode) {
	s.mode = ReduceMode(s.mode, mode)
}

func (s *symbol) Settings() ProtectionSettings     { return s.settings }
func (s *symbol) SetSettings(p ProtectionSettings) { s.settings = p }
