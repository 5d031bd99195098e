package rules

import (
	"shroud/internal/model"
)

// Resolve folds the rule list over one symbol, in declaration order, and
// returns the resulting protection settings.
//
// For each matching rule: a non-inheriting rule discards everything
// accumulated so far; the rule's preset then fills default entries for
// every protection whose own tier is non-zero and at most the rule's tier,
// without overwriting entries already present; finally the rule's explicit
// entries apply, Add inserting or overwriting the full parameter table and
// Remove deleting the entry.
//
// Resolution is deterministic: the result depends only on the rule list and
// the symbol. An entry naming an unregistered protection id fails fast with
// a configuration error and nothing is attached.
func Resolve(sym model.Symbol, ruleList []*Rule, reg *Registry) (model.ProtectionSettings, error) {
	acc := make(model.ProtectionSettings)
	for _, rule := range ruleList {
		if !rule.Match(sym) {
			continue
		}
		if !rule.Inherit {
			acc = make(model.ProtectionSettings)
		}
		for _, p := range reg.Ordered() {
			if p.Preset == PresetNone || p.Preset > rule.Preset {
				continue
			}
			if _, ok := acc[p.ID]; !ok {
				acc[p.ID] = p.Defaults.Clone()
			}
		}
		for _, e := range rule.Entries {
			if _, err := reg.Get(e.ID); err != nil {
				return nil, err
			}
			switch e.Action {
			case ActionAdd:
				acc[e.ID] = e.Params.Clone()
			case ActionRemove:
				delete(acc, e.ID)
			}
		}
	}
	return acc, nil
}

// Apply resolves settings for every symbol of the module and attaches them.
// On a configuration error nothing is attached anywhere: the settings are
// computed for all symbols before the first write.
func Apply(m *model.Module, ruleList []*Rule, reg *Registry) error {
	symbols := m.Symbols()
	resolved := make([]model.ProtectionSettings, len(symbols))
	for i, sym := range symbols {
		s, err := Resolve(sym, ruleList, reg)
		if err != nil {
			return err
		}
		resolved[i] = s
	}
	for i, sym := range symbols {
		sym.SetSettings(resolved[i])
	}
	return nil
}
