// # internal/refs/reference.go
package refs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"shroud/internal/model"
)

// Kind tags the physical encoding of a reference site.
type Kind int

const (
	// DirectMetadata is a member reference reached through a generic
	// instantiation in a method body or override table.
	DirectMetadata Kind = iota
	// AttributeArgument is a field/property named argument or a serialized
	// type expression inside an attribute blob.
	AttributeArgument
	// MarkupPropertyPath is a "(Type.Property)" path expression inside a
	// markup document.
	MarkupPropertyPath
	// MarkupIndexerPath is a bracketed type name inside an indexer path
	// expression in a markup document.
	MarkupIndexerPath
	// MarkupString is a literal resource-path operand in an instruction
	// stream that must track a markup document's name.
	MarkupString
)

func (k Kind) String() string {
	switch k {
	case DirectMetadata:
		return "metadata"
	case AttributeArgument:
		return "attr-arg"
	case MarkupPropertyPath:
		return "markup-property"
	case MarkupIndexerPath:
		return "markup-indexer"
	case MarkupString:
		return "markup-string"
	}
	return "ref?"
}

// Reference is one use-site of a symbol or markup document. Each variant
// carries only the fields it needs; dispatch happens in Accept and Apply.
type Reference struct {
	Kind Kind

	// DirectMetadata
	Member *model.MemberRef

	// AttributeArgument: exactly one of NamedArg / TypeValue is set.
	NamedArg  *model.NamedArg
	TypeValue *model.TypeValue

	// Markup path forms: Cell points at the path expression's storage.
	Cell    *string
	Type    *model.TypeDef
	Segment string // property-local segment for the property-path form
	Prefix  string // namespace prefix from the document's prefix table
	// TargetProperty marks a property-path reference whose target is the
	// property segment rather than the type.
	TargetProperty bool
	// Dirty, when set, is raised on every markup mutation so the owning
	// document knows it must be re-serialized.
	Dirty *bool

	// MarkupString
	Instr     *model.Instruction
	PrefixLen int // operand bytes preceding the path segment
}

// CanVeto reports whether this reference kind may refuse a proposed rename
// outright. Only literal resource-path sites veto: every other kind can
// always be rewritten consistently.
func (r *Reference) CanVeto() bool {
	return r.Kind == MarkupString
}

// Accept is the pre-commit poll: it reports whether the reference can be
// rewritten from old to new. It never mutates.
func (r *Reference) Accept(old, new string) bool {
	if new == "" {
		return false
	}
	if r.Kind != MarkupString {
		return true
	}
	cur := r.path()
	if strings.EqualFold(cur, old) {
		return true
	}
	return strings.EqualFold(swapMarkupExt(cur), old)
}

// Apply rewrites the reference's underlying storage to reflect the new
// name and reports whether a mutation occurred. It is idempotent: applying
// the same rename twice changes nothing the second time.
func (r *Reference) Apply(old, new string) bool {
	switch r.Kind {
	case DirectMetadata:
		if r.Member.Name != old {
			return false
		}
		r.Member.Name = new
		return true

	case AttributeArgument:
		if r.NamedArg != nil {
			if r.NamedArg.Name != old {
				return false
			}
			r.NamedArg.Name = new
			return true
		}
		return r.TypeValue.Refresh()

	case MarkupPropertyPath:
		// The type-target and property-target forms share one cell, so the
		// current segment is read back from the cell: the value captured at
		// registration goes stale once the property commits.
		typeName := new
		segment := r.cellSegment()
		if r.TargetProperty {
			typeName = r.Type.Name()
			segment = new
		}
		text := "(" + r.qualify(typeName) + "." + segment + ")"
		if *r.Cell == text {
			return false
		}
		*r.Cell = text
		r.markDirty()
		return true

	case MarkupIndexerPath:
		text := "[" + r.qualify(new) + "]"
		if *r.Cell == text {
			return false
		}
		*r.Cell = text
		r.markDirty()
		return true

	case MarkupString:
		if !r.Accept(old, new) {
			return false
		}
		next := new
		if ext := markupExt(r.path()); ext != "" && !strings.EqualFold(markupExt(new), ext) {
			next = strings.TrimSuffix(new, markupExt(new)) + ext
		}
		op := r.Instr.Operand.(string)
		updated := op[:r.PrefixLen] + next
		if op == updated {
			return false
		}
		r.Instr.Operand = updated
		return true
	}
	return false
}

// Describe returns a stable, hashed diagnostic identity. Original names are
// not exposed in the output.
func (r *Reference) Describe() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|", r.Kind)
	switch r.Kind {
	case DirectMetadata:
		fmt.Fprintf(h, "%s", r.Member.Name)
	case AttributeArgument:
		if r.NamedArg != nil {
			fmt.Fprintf(h, "named:%s", r.NamedArg.Name)
		} else {
			fmt.Fprintf(h, "type:%s", r.TypeValue.Serialized)
		}
	case MarkupPropertyPath, MarkupIndexerPath:
		fmt.Fprintf(h, "%s", *r.Cell)
	case MarkupString:
		fmt.Fprintf(h, "%s", r.Instr.Operand)
	}
	sum := h.Sum(nil)
	return r.Kind.String() + ":" + hex.EncodeToString(sum[:6])
}

// cellSegment extracts the property segment from the cell's current text,
// falling back to the registration-time segment when the cell does not hold
// the path-expression form.
func (r *Reference) cellSegment() string {
	cur := *r.Cell
	if len(cur) > 2 && cur[0] == '(' && cur[len(cur)-1] == ')' {
		if i := strings.LastIndexByte(cur, '.'); i > 0 {
			return cur[i+1 : len(cur)-1]
		}
	}
	return r.Segment
}

func (r *Reference) markDirty() {
	if r.Dirty != nil {
		*r.Dirty = true
	}
}

func (r *Reference) qualify(typeName string) string {
	if r.Prefix != "" {
		return r.Prefix + ":" + typeName
	}
	if r.Type != nil && r.Type.Namespace != "" {
		return r.Type.Namespace + "." + typeName
	}
	return typeName
}

func (r *Reference) path() string {
	op, _ := r.Instr.Operand.(string)
	if r.PrefixLen > len(op) {
		return ""
	}
	return op[r.PrefixLen:]
}

func markupExt(p string) string {
	i := strings.LastIndexByte(p, '.')
	if i < 0 {
		return ""
	}
	return p[i:]
}

func swapMarkupExt(p string) string {
	switch strings.ToLower(markupExt(p)) {
	case ".baml":
		return strings.TrimSuffix(p, markupExt(p)) + ".xaml"
	case ".xaml":
		return strings.TrimSuffix(p, markupExt(p)) + ".baml"
	}
	return p
}
