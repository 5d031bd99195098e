// # internal/markup/paths.go
package markup

import (
	"regexp"
	"strings"

	"shroud/internal/model"
	"shroud/internal/refs"
)

var (
	propertyPathPattern = regexp.MustCompile(`^\((.+)\.([A-Za-z_][A-Za-z0-9_]*)\)$`)
	indexerPathPattern  = regexp.MustCompile(`^\[(.+)\]$`)
)

// registerDocumentPaths walks a decoded document and registers a reference
// for every name/path expression that resolves into the protected set.
func (a *Analyzer) registerDocumentPaths(doc *Document) {
	doc.Walk(func(e *Element) {
		for _, p := range e.Props {
			a.registerPathExpression(doc, p)
		}
	})
}

func (a *Analyzer) registerPathExpression(doc *Document, p *Property) {
	if m := propertyPathPattern.FindStringSubmatch(p.Value); m != nil {
		typePart, segment := m[1], m[2]
		t, prefix := a.resolvePathType(doc, typePart)
		if t == nil {
			return
		}
		a.auth.RegisterReference(t, &refs.Reference{
			Kind:    refs.MarkupPropertyPath,
			Cell:    &p.Value,
			Type:    t,
			Segment: segment,
			Prefix:  prefix,
			Dirty:   &doc.Dirty,
		})
		if prop := refs.ResolveProperty(t, segment, nil); prop != nil {
			a.auth.RegisterReference(prop, &refs.Reference{
				Kind:           refs.MarkupPropertyPath,
				Cell:           &p.Value,
				Type:           t,
				Segment:        segment,
				Prefix:         prefix,
				TargetProperty: true,
				Dirty:          &doc.Dirty,
			})
		}
		return
	}

	if m := indexerPathPattern.FindStringSubmatch(p.Value); m != nil {
		t, prefix := a.resolvePathType(doc, m[1])
		if t == nil {
			return
		}
		cell := &p.Value
		a.auth.RegisterReference(t, &refs.Reference{
			Kind:   refs.MarkupIndexerPath,
			Cell:   cell,
			Type:   t,
			Prefix: prefix,
			Dirty:  &doc.Dirty,
		})
	}
}

// resolvePathType resolves a path expression's type part, either
// "prefix:Name" through the document's namespace-prefix table or a plain
// namespace-qualified full name, against the protected module set.
func (a *Analyzer) resolvePathType(doc *Document, typePart string) (*model.TypeDef, string) {
	if i := strings.IndexByte(typePart, ':'); i >= 0 {
		prefix, name := typePart[:i], typePart[i+1:]
		for ns, pfx := range doc.Prefixes {
			if pfx != prefix {
				continue
			}
			if t := a.findType(ns + "." + name); t != nil {
				return t, prefix
			}
		}
		return nil, ""
	}
	return a.findType(typePart), ""
}

func (a *Analyzer) findType(fullName string) *model.TypeDef {
	for _, m := range a.actx.Modules {
		if t := m.FindType(fullName); t != nil {
			return t
		}
	}
	return nil
}
