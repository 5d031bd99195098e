// # internal/markup/document.go
package markup

import (
	"strings"
)

// Document is the structured form of one markup entry extracted from a
// resource container. Its decoded (logical) and encoded (escaped) names
// are kept in lockstep: a rename updates both or neither.
type Document struct {
	// Name is the decoded logical path, e.g. "themes/generic.baml".
	Name string
	// EncodedName is the percent-encoded form as stored in the container.
	EncodedName string
	// OriginalKey is the container entry key the document was decoded
	// from, used to match the document back at regeneration time.
	OriginalKey string
	// Prefixes maps clr namespaces to their markup prefix.
	Prefixes map[string]string
	Root     *Element
	// Dirty is set when a reference rewrite or a rename touched the
	// document; clean documents round-trip byte-identical.
	Dirty bool
}

// Element is one node of the markup tree.
type Element struct {
	Type     string
	Props    []*Property
	Children []*Element
}

// Property is a named value on an element. Name and path expressions that
// must track renames live inside Value.
type Property struct {
	Name  string
	Value string
}

// Walk visits every element of the tree depth-first.
func (d *Document) Walk(visit func(*Element)) {
	if d.Root == nil {
		return
	}
	var rec func(e *Element)
	rec = func(e *Element) {
		visit(e)
		for _, c := range e.Children {
			rec(c)
		}
	}
	rec(d.Root)
}

// Codec decodes and encodes the markup binary format. The format itself is
// owned by an external collaborator; this core only consumes the
// structured tree.
type Codec interface {
	Decode(name string, data []byte) (*Document, error)
	Encode(doc *Document) ([]byte, error)
}

const (
	// containerSuffix marks resource containers holding markup entries.
	containerSuffix = ".g.resources"
	extCompiled     = ".baml"
	extSource       = ".xaml"
)

// IsMarkupContainer reports whether a resource container may hold markup
// documents.
func IsMarkupContainer(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), containerSuffix)
}

// IsMarkupEntry reports whether a container entry key names a markup
// document.
func IsMarkupEntry(key string) bool {
	return strings.HasSuffix(strings.ToLower(key), extCompiled)
}

// HasMarkupExt reports whether a path ends in one of the two recognized
// markup extensions.
func HasMarkupExt(p string) bool {
	low := strings.ToLower(p)
	return strings.HasSuffix(low, extCompiled) || strings.HasSuffix(low, extSource)
}
