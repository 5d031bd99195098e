package rules

import (
	"sort"

	"shroud/internal/core/errors"
	"shroud/internal/model"
)

// Protection describes one registered protection: its preset tier decides
// which rule tiers enable it by default, Defaults seed its parameter table.
type Protection struct {
	ID       string
	Preset   Preset
	Defaults model.Params
}

// Registry holds every known protection. Referencing an id outside the
// registry is a configuration error.
type Registry struct {
	byID map[string]*Protection
}

func NewRegistry(protections ...*Protection) *Registry {
	r := &Registry{byID: make(map[string]*Protection, len(protections))}
	for _, p := range protections {
		r.byID[p.ID] = p
	}
	return r
}

func (r *Registry) Add(p *Protection) {
	r.byID[p.ID] = p
}

func (r *Registry) Get(id string) (*Protection, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, errors.AddContext(
			errors.New(errors.CodeConfig, "unknown protection id"),
			errors.CtxProtection, id)
	}
	return p, nil
}

// Ordered returns the registered protections sorted by id, so preset fill
// is deterministic.
func (r *Registry) Ordered() []*Protection {
	out := make([]*Protection, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
