// # internal/renamer/generator.go
package renamer

import (
	"shroud/internal/model"
)

// NameGenerator is the external naming authority's generation surface. It
// guarantees that FreshName never returns the same name twice for one
// generator instance, so proposed names are unique within a module.
type NameGenerator interface {
	// Generate proposes a new name for the symbol under the given mode.
	Generate(sym model.Symbol, mode model.RenameMode) string
	// FreshName produces a new name under the given mode without a symbol,
	// used for markup document file names.
	FreshName(mode model.RenameMode) string
}

const (
	compactAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_$#"
	asciiAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"
	letterAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// SeqGenerator derives names from a monotonically increasing counter. The
// counter is shared across modes, so every emitted name is distinct.
type SeqGenerator struct {
	next int
}

func NewSeqGenerator() *SeqGenerator {
	return &SeqGenerator{}
}

func (g *SeqGenerator) Generate(sym model.Symbol, mode model.RenameMode) string {
	if mode == model.ModeRetain {
		return sym.Name()
	}
	return g.FreshName(mode)
}

func (g *SeqGenerator) FreshName(mode model.RenameMode) string {
	n := g.next
	g.next++

	alphabet := letterAlphabet
	switch mode {
	case model.ModeCompact:
		alphabet = compactAlphabet
	case model.ModeASCII:
		alphabet = asciiAlphabet
	}
	return encode(n, alphabet)
}

func encode(n int, alphabet string) string {
	base := len(alphabet)
	var out []byte
	for {
		out = append(out, alphabet[n%base])
		n /= base
		if n == 0 {
			break
		}
		n--
	}
	// reverse
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
