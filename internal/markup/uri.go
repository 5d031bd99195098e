// # internal/markup/uri.go
package markup

import (
	"net/url"
	"regexp"
	"strings"
)

// uriPattern matches resource-path literals: an optional pack scheme, an
// optional "/Assembly;component/" segment, then a path with one of the two
// markup extensions.
var uriPattern = regexp.MustCompile(`(?i)^(?:pack://(?:application|component):,,,)?(?:/([^/;]+);component)?/?(.+\.(?:baml|xaml))$`)

// ResourceURI is a parsed resource-path literal.
type ResourceURI struct {
	// Assembly is the embedded assembly-name segment, empty when absent.
	Assembly string
	// Path is the raw (still percent-encoded) path segment.
	Path string
}

// ParseResourceURI parses a literal string operand into its assembly and
// path parts. It reports false for strings that are not resource paths.
func ParseResourceURI(s string) (ResourceURI, bool) {
	m := uriPattern.FindStringSubmatch(s)
	if m == nil {
		return ResourceURI{}, false
	}
	return ResourceURI{Assembly: m[1], Path: m[2]}, true
}

// DecodePath percent-decodes a resource path once. A path that does not
// decode cleanly is returned unchanged: never decode more than once, never
// guess.
func DecodePath(p string) string {
	decoded, err := url.PathUnescape(p)
	if err != nil {
		return p
	}
	return decoded
}

// EncodePath percent-encodes a resource path's segments once, preserving
// the separators.
func EncodePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// SwapExt flips a markup path between its compiled and source extensions.
func SwapExt(p string) string {
	low := strings.ToLower(p)
	switch {
	case strings.HasSuffix(low, extCompiled):
		return p[:len(p)-len(extCompiled)] + extSource
	case strings.HasSuffix(low, extSource):
		return p[:len(p)-len(extSource)] + extCompiled
	}
	return p
}
