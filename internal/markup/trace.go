// # internal/markup/trace.go
package markup

import (
	"shroud/internal/model"
)

// traceNameLiteral recovers the string literal feeding a registration
// call. Starting from the call, producers of every consumed stack argument
// are expanded worklist-style until instructions with no further arguments
// remain; the earliest such frontier instruction is taken as the literal
// source. A visited set guards against degenerate producer cycles in
// obfuscated inputs.
func (a *Analyzer) traceNameLiteral(method *model.MethodDef, callIndex int) (string, bool) {
	pending, err := a.tracer.TraceArguments(method, callIndex)
	if err != nil {
		return "", false
	}

	visited := make(map[int]bool)
	frontier := -1
	for len(pending) > 0 {
		idx := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if idx < 0 || idx >= len(method.Body) || visited[idx] {
			continue
		}
		visited[idx] = true

		if method.Body[idx].Pops() == 0 {
			if frontier < 0 || idx < frontier {
				frontier = idx
			}
			continue
		}
		producers, err := a.tracer.TraceArguments(method, idx)
		if err != nil {
			return "", false
		}
		pending = append(pending, producers...)
	}

	if frontier < 0 {
		return "", false
	}
	lit, ok := method.Body[frontier].String()
	return lit, ok
}
