// # internal/model/signature.go
package model

import "strings"

// TypeSig is a type as it appears in a blob-encoded signature. Wrapper
// variants (array, by-ref, modifier) nest another signature; leaf variants
// are a resolved definition, an external reference or a generic parameter.
type TypeSig interface {
	isTypeSig()
	// SigName renders the signature's display name, resolving definitions
	// through their current (possibly renamed) symbol names.
	SigName() string
}

// DefSig references a type definition in the analysis universe.
type DefSig struct {
	Type *TypeDef
}

// RefSig references a type outside the analysis universe.
type RefSig struct {
	Assembly  string
	Namespace string
	Name      string
}

// GenericInstSig is a closed generic instantiation of Elem.
type GenericInstSig struct {
	Elem TypeSig
	Args []TypeSig
}

// GenericParamSig references a generic parameter by position.
type GenericParamSig struct {
	Index int
}

type ArraySig struct {
	Elem TypeSig
}

type ByRefSig struct {
	Elem TypeSig
}

// ModifierSig is a custom-modifier wrapper around Elem.
type ModifierSig struct {
	Elem     TypeSig
	Modifier string
}

func (DefSig) isTypeSig()          {}
func (RefSig) isTypeSig()          {}
func (GenericInstSig) isTypeSig()  {}
func (GenericParamSig) isTypeSig() {}
func (ArraySig) isTypeSig()        {}
func (ByRefSig) isTypeSig()        {}
func (ModifierSig) isTypeSig()     {}

func (s DefSig) SigName() string { return s.Type.FullName() }

func (s RefSig) SigName() string {
	if s.Namespace == "" {
		return s.Name
	}
	return s.Namespace + "." + s.Name
}

func (s GenericInstSig) SigName() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = a.SigName()
	}
	return s.Elem.SigName() + "<" + strings.Join(args, ",") + ">"
}

func (s GenericParamSig) SigName() string { return "!" + itoa(s.Index) }
func (s ArraySig) SigName() string        { return s.Elem.SigName() + "[]" }
func (s ByRefSig) SigName() string        { return s.Elem.SigName() + "&" }
func (s ModifierSig) SigName() string     { return s.Elem.SigName() }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [8]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

// PeelSig unwraps nested wrapper signatures until it reaches the innermost
// element: a definition, external reference, generic instantiation or
// generic parameter.
func PeelSig(sig TypeSig) TypeSig {
	for {
		switch s := sig.(type) {
		case ArraySig:
			sig = s.Elem
		case ByRefSig:
			sig = s.Elem
		case ModifierSig:
			sig = s.Elem
		default:
			return sig
		}
	}
}

// SigEquals compares two signatures structurally. Definition leaves compare
// by identity, references by name.
func SigEquals(a, b TypeSig) bool {
	switch x := a.(type) {
	case DefSig:
		y, ok := b.(DefSig)
		return ok && x.Type == y.Type
	case RefSig:
		y, ok := b.(RefSig)
		return ok && x.Namespace == y.Namespace && x.Name == y.Name
	case GenericInstSig:
		y, ok := b.(GenericInstSig)
		if !ok || len(x.Args) != len(y.Args) || !SigEquals(x.Elem, y.Elem) {
			return false
		}
		for i := range x.Args {
			if !SigEquals(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case GenericParamSig:
		y, ok := b.(GenericParamSig)
		return ok && x.Index == y.Index
	case ArraySig:
		y, ok := b.(ArraySig)
		return ok && SigEquals(x.Elem, y.Elem)
	case ByRefSig:
		y, ok := b.(ByRefSig)
		return ok && SigEquals(x.Elem, y.Elem)
	case ModifierSig:
		y, ok := b.(ModifierSig)
		return ok && SigEquals(x.Elem, y.Elem)
	}
	return false
}

// IsReflectionType reports whether the signature denotes the runtime's
// reflection Type surrogate. Arguments of this static type may carry type
// expressions that are looked up by name at runtime.
func IsReflectionType(sig TypeSig) bool {
	switch s := PeelSig(sig).(type) {
	case RefSig:
		return s.Namespace == "System" && s.Name == "Type"
	case DefSig:
		return s.Type.Namespace == "System" && s.Type.Name() == "Type"
	}
	return false
}

// WalkSigTypes visits every in-universe type definition nested anywhere in
// the signature, generic arguments included.
func WalkSigTypes(sig TypeSig, visit func(*TypeDef)) {
	switch s := sig.(type) {
	case DefSig:
		visit(s.Type)
	case GenericInstSig:
		WalkSigTypes(s.Elem, visit)
		for _, a := range s.Args {
			WalkSigTypes(a, visit)
		}
	case ArraySig:
		WalkSigTypes(s.Elem, visit)
	case ByRefSig:
		WalkSigTypes(s.Elem, visit)
	case ModifierSig:
		WalkSigTypes(s.Elem, visit)
	}
}
