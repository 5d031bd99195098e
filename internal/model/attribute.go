// # internal/model/attribute.go
package model

// Attribute is one custom attribute attached to a metadata-table owner.
type Attribute struct {
	Type      TypeSig
	CtorArgs  []*AttrArg
	NamedArgs []*NamedArg
}

// AttrArg is a single attribute argument value with its static type.
// Value is a string, an int64, a *TypeValue for type expressions, or a
// []*AttrArg for array arguments.
type AttrArg struct {
	Type  TypeSig
	Value any
}

// TypeValue is a type expression stored inside an attribute blob. The blob
// encodes the type by its serialized display name, so the cached Serialized
// string must be rewritten whenever a type it mentions is renamed.
type TypeValue struct {
	Sig        TypeSig
	Serialized string
}

// Refresh recomputes the serialized name from the signature and reports
// whether it changed.
func (v *TypeValue) Refresh() bool {
	name := v.Sig.SigName()
	if name == v.Serialized {
		return false
	}
	v.Serialized = name
	return true
}

// NamedArg is a field or property argument of an attribute, located on the
// attribute type by name.
type NamedArg struct {
	Name    string
	IsField bool
	Arg     *AttrArg
}
