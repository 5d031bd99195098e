package config

import (
	"testing"

	"shroud/internal/core/errors"
	"shroud/internal/model"
)

const sampleConfig = `
version = 1

[naming]
mode = "ascii"

[history]
enabled = true

[[protection]]
id = "anti-tamper"
preset = "maximum"
[protection.defaults]
key = "dynamic"

[[rule]]
pattern = "App.Views.**"
preset = "normal"
kinds = ["type", "property"]

[[rule.protection]]
id = "anti-tamper"
action = "remove"
`

func TestParse(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Naming.Mode != "ascii" {
		t.Errorf("naming mode = %q", cfg.Naming.Mode)
	}
	if cfg.History.Path != "data/state/renames.db" {
		t.Errorf("default history path not applied: %q", cfg.History.Path)
	}
	if len(cfg.Rules) != 1 {
		t.Fatalf("expected one rule, got %d", len(cfg.Rules))
	}
	r := cfg.Rules[0]
	if r.Inherit == nil || !*r.Inherit {
		t.Error("inherit must default to true")
	}
	if len(r.Protections) != 1 || r.Protections[0].Action != "remove" {
		t.Errorf("rule protections = %+v", r.Protections)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`[[rule]]`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != 1 {
		t.Errorf("version default = %d", cfg.Version)
	}
	if cfg.Naming.Mode != "letters" {
		t.Errorf("naming mode default = %q", cfg.Naming.Mode)
	}
	if cfg.Rules[0].Pattern != "**" {
		t.Errorf("rule pattern default = %q", cfg.Rules[0].Pattern)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"toml syntax", `version = `},
		{"unsupported version", `version = 7`},
		{"bad naming mode", "[naming]\nmode = \"scramble\""},
		{"protection without id", "[[protection]]\npreset = \"normal\""},
		{"duplicate protection id", "[[protection]]\nid = \"x\"\n[[protection]]\nid = \"x\""},
		{"bad preset", "[[protection]]\nid = \"x\"\npreset = \"extreme\""},
		{"unknown rule protection", "[[rule]]\n[[rule.protection]]\nid = \"ghost\""},
		{"bad rule action", "[[protection]]\nid = \"x\"\n[[rule]]\n[[rule.protection]]\nid = \"x\"\naction = \"toggle\""},
		{"bad rule kind", "[[rule]]\nkinds = [\"namespace\"]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.IsCode(err, errors.CodeConfig) {
				t.Errorf("expected config error code, got %v", err)
			}
		})
	}
}

func TestBuildRegistry_AlwaysCarriesRename(t *testing.T) {
	cfg, err := Parse(`version = 1`)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := BuildRegistry(cfg)
	if err != nil {
		t.Fatal(err)
	}
	p, err := reg.Get("rename")
	if err != nil {
		t.Fatal(err)
	}
	if p.Defaults["mode"] != "letters" {
		t.Errorf("rename default mode = %q", p.Defaults["mode"])
	}
}

func TestBuildRules(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatal(err)
	}

	built, err := BuildRules(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(built) != 1 {
		t.Fatalf("expected one rule, got %d", len(built))
	}

	m := model.NewModule("App")
	inside := m.AddType("App.Views", "Main")
	outside := m.AddType("App.Data", "Row")
	if !built[0].Match(inside) {
		t.Error("rule must match a type under App.Views")
	}
	if built[0].Match(outside) {
		t.Error("rule must not match outside its pattern")
	}
}

func TestBuildRules_MalformedPattern(t *testing.T) {
	cfg, err := Parse("[[rule]]\npattern = \"App.[\"")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildRules(cfg); !errors.IsCode(err, errors.CodeConfig) {
		t.Errorf("expected config error for malformed pattern, got %v", err)
	}
}
