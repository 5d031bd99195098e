// # internal/analysis/context.go
package analysis

import (
	"strings"

	"github.com/google/uuid"

	"shroud/internal/model"
)

// Context is the analysis universe for one protection run: the set of
// modules under protection plus the run identity used to correlate
// diagnostics and the persisted rename map. It is created at analysis start
// and discarded when the run ends; no state outlives it.
type Context struct {
	RunID   string
	Modules []*model.Module
}

func NewContext(modules ...*model.Module) *Context {
	return &Context{
		RunID:   uuid.NewString(),
		Modules: modules,
	}
}

// FindModule resolves an assembly name against the protected set,
// case-insensitively. A nil result means the assembly is outside the
// protection scope.
func (c *Context) FindModule(name string) *model.Module {
	for _, m := range c.Modules {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// InScope reports whether a type belongs to the protected module set.
func (c *Context) InScope(t *model.TypeDef) bool {
	if t == nil {
		return false
	}
	for _, m := range c.Modules {
		if t.Module() == m {
			return true
		}
	}
	return false
}
