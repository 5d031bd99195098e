package config

import (
	"shroud/internal/core/errors"
	"shroud/internal/model"
	"shroud/internal/rules"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return errors.Newf(errors.CodeConfig, "unsupported config version %d", cfg.Version)
	}
	return nil
}

func validateNaming(cfg *Config) error {
	if _, err := model.ParseRenameMode(cfg.Naming.Mode); err != nil {
		return errors.Wrap(err, errors.CodeConfig, "invalid naming mode")
	}
	return nil
}

func validateProtections(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Protections))
	for _, p := range cfg.Protections {
		if p.ID == "" {
			return errors.New(errors.CodeConfig, "protection without id")
		}
		if seen[p.ID] {
			return errors.AddContext(
				errors.New(errors.CodeConfig, "duplicate protection id"),
				errors.CtxProtection, p.ID)
		}
		seen[p.ID] = true
		if _, err := rules.ParsePreset(p.Preset); err != nil {
			return err
		}
	}
	return nil
}

func validateRules(cfg *Config) error {
	known := make(map[string]bool, len(cfg.Protections))
	for _, p := range cfg.Protections {
		known[p.ID] = true
	}
	for _, r := range cfg.Rules {
		if _, err := rules.ParsePreset(r.Preset); err != nil {
			return err
		}
		for _, k := range r.Kinds {
			if _, err := parseKind(k); err != nil {
				return err
			}
		}
		for _, rp := range r.Protections {
			if !known[rp.ID] {
				return errors.AddContext(
					errors.New(errors.CodeConfig, "rule references unknown protection id"),
					errors.CtxProtection, rp.ID)
			}
			switch rp.Action {
			case "", "add", "remove":
			default:
				return errors.Newf(errors.CodeConfig, "unknown rule action %q", rp.Action)
			}
		}
	}
	return nil
}

func parseKind(s string) (model.SymbolKind, error) {
	switch s {
	case "type":
		return model.KindType, nil
	case "method":
		return model.KindMethod, nil
	case "field":
		return model.KindField, nil
	case "property":
		return model.KindProperty, nil
	case "event":
		return model.KindEvent, nil
	}
	return 0, errors.Newf(errors.CodeConfig, "unknown symbol kind %q", s)
}
