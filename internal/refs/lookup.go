package refs

import "shroud/internal/model"

// ResolveField locates a field by name and signature, walking up the
// declaring-type chain until found or exhausted.
func ResolveField(t *model.TypeDef, name string, sig model.TypeSig) *model.FieldDef {
	for cur := t; cur != nil; cur = cur.DeclaringType {
		for _, f := range cur.Fields {
			if f.Name() == name && (sig == nil || model.SigEquals(f.Type, sig)) {
				return f
			}
		}
	}
	return nil
}

// ResolveProperty locates a property by name and signature, walking up the
// base-type chain until found or exhausted.
func ResolveProperty(t *model.TypeDef, name string, sig model.TypeSig) *model.PropertyDef {
	for cur := t; cur != nil; cur = cur.BaseType {
		for _, p := range cur.Properties {
			if p.Name() == name && (sig == nil || model.SigEquals(p.Type, sig)) {
				return p
			}
		}
	}
	return nil
}
