package config

type Config struct {
	Version       int           `toml:"version"`
	Naming        Naming        `toml:"naming"`
	Observability Observability `toml:"observability"`
	History       History       `toml:"history"`
	Protections   []Protection  `toml:"protection"`
	Rules         []Rule        `toml:"rule"`
}

type Naming struct {
	// Mode is the initial rename mode assigned to every symbol.
	Mode string `toml:"mode"`
}

type Observability struct {
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Protection struct {
	ID       string            `toml:"id"`
	Preset   string            `toml:"preset"`
	Defaults map[string]string `toml:"defaults"`
}

type Rule struct {
	Pattern     string           `toml:"pattern"`
	Preset      string           `toml:"preset"`
	Inherit     *bool            `toml:"inherit"`
	Kinds       []string         `toml:"kinds"`
	Attribute   string           `toml:"attribute"`
	Protections []RuleProtection `toml:"protection"`
}

type RuleProtection struct {
	ID     string            `toml:"id"`
	Action string            `toml:"action"`
	Params map[string]string `toml:"params"`
}
