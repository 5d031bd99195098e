package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"shroud/internal/core/errors"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "cannot decode config")
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateNaming(&cfg); err != nil {
		return nil, err
	}
	if err := validateProtections(&cfg); err != nil {
		return nil, err
	}
	if err := validateRules(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Naming.Mode == "" {
		cfg.Naming.Mode = "letters"
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		cfg.History.Path = "data/state/renames.db"
	}
	for i := range cfg.Rules {
		if cfg.Rules[i].Inherit == nil {
			inherit := true
			cfg.Rules[i].Inherit = &inherit
		}
		if cfg.Rules[i].Pattern == "" {
			cfg.Rules[i].Pattern = "**"
		}
	}
}
