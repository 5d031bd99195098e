package config

import (
	"shroud/internal/model"
	"shroud/internal/rules"
)

// BuildRegistry converts the declared protections into a rule-engine
// registry. The rename protection is always present so the rename pass has
// an id to resolve against.
func BuildRegistry(cfg *Config) (*rules.Registry, error) {
	reg := rules.NewRegistry(&rules.Protection{
		ID:     "rename",
		Preset: rules.PresetMinimum,
		Defaults: model.Params{
			"mode": cfg.Naming.Mode,
		},
	})
	for _, p := range cfg.Protections {
		preset, err := rules.ParsePreset(p.Preset)
		if err != nil {
			return nil, err
		}
		defaults := make(model.Params, len(p.Defaults))
		for k, v := range p.Defaults {
			defaults[k] = v
		}
		reg.Add(&rules.Protection{ID: p.ID, Preset: preset, Defaults: defaults})
	}
	return reg, nil
}

// BuildRules compiles every declared rule, failing fast on a malformed
// pattern.
func BuildRules(cfg *Config) ([]*rules.Rule, error) {
	out := make([]*rules.Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		preset, err := rules.ParsePreset(rc.Preset)
		if err != nil {
			return nil, err
		}
		entries := make([]rules.Entry, 0, len(rc.Protections))
		for _, rp := range rc.Protections {
			action := rules.ActionAdd
			if rp.Action == "remove" {
				action = rules.ActionRemove
			}
			params := make(model.Params, len(rp.Params))
			for k, v := range rp.Params {
				params[k] = v
			}
			entries = append(entries, rules.Entry{ID: rp.ID, Params: params, Action: action})
		}
		rule, err := rules.NewRule(rc.Pattern, preset, *rc.Inherit, entries)
		if err != nil {
			return nil, err
		}
		for _, k := range rc.Kinds {
			kind, err := parseKind(k)
			if err != nil {
				return nil, err
			}
			rule.Kinds = append(rule.Kinds, kind)
		}
		rule.AttrName = rc.Attribute
		out = append(out, rule)
	}
	return out, nil
}
