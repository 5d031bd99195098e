// # internal/model/module.go
package model

import "strings"

// Module is one compiled unit under protection: its type definitions,
// assembly-level attributes and embedded resource containers. All symbol
// and resource state is in memory; nothing here touches I/O.
type Module struct {
	Name      string
	Types     []*TypeDef
	Attrs     []*Attribute
	Resources []*ResourceContainer
}

func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddType creates a top-level type owned by this module.
func (m *Module) AddType(namespace, name string) *TypeDef {
	t := &TypeDef{
		symbol:    symbol{name: name, module: m},
		Namespace: namespace,
	}
	m.Types = append(m.Types, t)
	return t
}

// AllTypes returns every type in the module, nested types included.
func (m *Module) AllTypes() []*TypeDef {
	var out []*TypeDef
	var walk func(t *TypeDef)
	walk = func(t *TypeDef) {
		out = append(out, t)
		for _, n := range t.Nested {
			walk(n)
		}
	}
	for _, t := range m.Types {
		walk(t)
	}
	return out
}

// FindType locates a type by full name.
func (m *Module) FindType(fullName string) *TypeDef {
	for _, t := range m.AllTypes() {
		if t.FullName() == fullName {
			return t
		}
	}
	return nil
}

// Symbols returns every renamable definition in the module in declaration
// order: types first, then their members.
func (m *Module) Symbols() []Symbol {
	var out []Symbol
	for _, t := range m.AllTypes() {
		out = append(out, t)
		for _, f := range t.Fields {
			out = append(out, f)
		}
		for _, mm := range t.Methods {
			out = append(out, mm)
		}
		for _, p := range t.Properties {
			out = append(out, p)
		}
		for _, e := range t.Events {
			out = append(out, e)
		}
	}
	return out
}

type TypeDef struct {
	symbol
	Namespace     string
	DeclaringType *TypeDef
	BaseType      *TypeDef
	Nested        []*TypeDef
	Fields        []*FieldDef
	Methods       []*MethodDef
	Properties    []*PropertyDef
	Events        []*EventDef
	Attrs         []*Attribute
	GenericParams int
}

func (t *TypeDef) Kind() SymbolKind { return KindType }

func (t *TypeDef) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "+" + t.name
	}
	if t.Namespace == "" {
		return t.name
	}
	return t.Namespace + "." + t.name
}

func (t *TypeDef) AddNested(name string) *TypeDef {
	n := &TypeDef{
		symbol:        symbol{name: name, module: t.module},
		Namespace:     t.Namespace,
		DeclaringType: t,
	}
	t.Nested = append(t.Nested, n)
	return n
}

func (t *TypeDef) AddField(name string, sig TypeSig) *FieldDef {
	f := &FieldDef{
		symbol:        symbol{name: name, module: t.module},
		DeclaringType: t,
		Type:          sig,
	}
	t.Fields = append(t.Fields, f)
	return f
}

func (t *TypeDef) AddMethod(name string) *MethodDef {
	m := &MethodDef{
		symbol:        symbol{name: name, module: t.module},
		DeclaringType: t,
	}
	t.Methods = append(t.Methods, m)
	return m
}

func (t *TypeDef) AddProperty(name string, sig TypeSig) *PropertyDef {
	p := &PropertyDef{
		symbol:        symbol{name: name, module: t.module},
		DeclaringType: t,
		Type:          sig,
	}
	t.Properties = append(t.Properties, p)
	return p
}

func (t *TypeDef) AddEvent(name string) *EventDef {
	e := &EventDef{
		symbol:        symbol{name: name, module: t.module},
		DeclaringType: t,
	}
	t.Events = append(t.Events, e)
	return e
}

// FindMethod returns the first method with the given name.
func (t *TypeDef) FindMethod(name string) *MethodDef {
	for _, m := range t.Methods {
		if m.name == name {
			return m
		}
	}
	return nil
}

// FindProperty returns the first property with the given name.
func (t *TypeDef) FindProperty(name string) *PropertyDef {
	for _, p := range t.Properties {
		if p.name == name {
			return p
		}
	}
	return nil
}

// FindEvent returns the first event with the given name.
func (t *TypeDef) FindEvent(name string) *EventDef {
	for _, e := range t.Events {
		if e.name == name {
			return e
		}
	}
	return nil
}

type MethodDef struct {
	symbol
	DeclaringType *TypeDef
	Body          []*Instruction
	Overrides     []*MemberRef
	ParamTypes    []TypeSig
	ReturnType    TypeSig
	Attrs         []*Attribute
}

func (m *MethodDef) Kind() SymbolKind { return KindMethod }
func (m *MethodDef) FullName() string { return memberFullName(m.DeclaringType, m.name) }

type FieldDef struct {
	symbol
	DeclaringType *TypeDef
	Type          TypeSig
	Attrs         []*Attribute
}

func (f *FieldDef) Kind() SymbolKind { return KindField }
func (f *FieldDef) FullName() string { return memberFullName(f.DeclaringType, f.name) }

type PropertyDef struct {
	symbol
	DeclaringType *TypeDef
	Type          TypeSig
	Getter        *MethodDef
	Setter        *MethodDef
	Others        []*MethodDef
	Attrs         []*Attribute
}

func (p *PropertyDef) Kind() SymbolKind { return KindProperty }
func (p *PropertyDef) FullName() string { return memberFullName(p.DeclaringType, p.name) }

// Accessors returns every accessor method backing the property.
func (p *PropertyDef) Accessors() []*MethodDef {
	var out []*MethodDef
	if p.Getter != nil {
		out = append(out, p.Getter)
	}
	if p.Setter != nil {
		out = append(out, p.Setter)
	}
	out = append(out, p.Others...)
	return out
}

type EventDef struct {
	symbol
	DeclaringType *TypeDef
	Add           *MethodDef
	Remove        *MethodDef
	Invoke        *MethodDef
	Others        []*MethodDef
	Attrs         []*Attribute
}

func (e *EventDef) Kind() SymbolKind { return KindEvent }
func (e *EventDef) FullName() string { return memberFullName(e.DeclaringType, e.name) }

// Accessors returns every handler method backing the event.
func (e *EventDef) Accessors() []*MethodDef {
	var out []*MethodDef
	for _, m := range []*MethodDef{e.Add, e.Remove, e.Invoke} {
		if m != nil {
			out = append(out, m)
		}
	}
	out = append(out, e.Others...)
	return out
}

func memberFullName(t *TypeDef, name string) string {
	if t == nil {
		return name
	}
	return t.FullName() + "::" + name
}

// ResourceContainer is an ordered, named-entry store embedded in a module.
// It is always rewritten wholesale, never patched entry by entry.
type ResourceContainer struct {
	Name    string
	Entries []*ResourceEntry
}

type ResourceEntry struct {
	Key  string
	Data []byte
}

// Find returns the entry with the given key, matched case-insensitively.
func (c *ResourceContainer) Find(key string) *ResourceEntry {
	for _, e := range c.Entries {
		if strings.EqualFold(e.Key, key) {
			return e
		}
	}
	return nil
}
