// # cmd/shroud/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"shroud/internal/core/config"
	"shroud/internal/history"
	"shroud/internal/model"
	"shroud/internal/rules"
	"shroud/internal/shared/observability"
)

var (
	configPath = flag.String("config", "./shroud.toml", "Path to config file")
	check      = flag.Bool("check", false, "Validate the config file and exit")
	resolve    = flag.String("resolve", "", "Print the resolved protection settings for a symbol full name")
	kind       = flag.String("kind", "type", "Symbol kind for -resolve (type|method|field|property|event)")
	lookup     = flag.String("lookup", "", "Resolve an obfuscated name (module:name) against the rename map")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "0.3.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("shroud v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("invalid config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		slog.Error("cannot initialize tracing", "error", err)
		os.Exit(1)
	}
	defer shutdown(ctx)

	if *check {
		if _, err := config.BuildRegistry(cfg); err != nil {
			slog.Error("invalid protection registry", "error", err)
			os.Exit(1)
		}
		if _, err := config.BuildRules(cfg); err != nil {
			slog.Error("invalid rules", "error", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d protection(s), %d rule(s), ok\n", *configPath, len(cfg.Protections), len(cfg.Rules))
		return
	}

	if *resolve != "" {
		runResolve(cfg, *resolve, *kind)
		return
	}

	if *lookup != "" {
		runLookup(ctx, cfg, *lookup)
		return
	}

	flag.Usage()
	os.Exit(2)
}

// runResolve builds a stand-in symbol for the given full name and prints the
// protection settings the rule list resolves for it.
func runResolve(cfg *config.Config, fullName, kindName string) {
	reg, err := config.BuildRegistry(cfg)
	if err != nil {
		slog.Error("invalid protection registry", "error", err)
		os.Exit(1)
	}
	ruleList, err := config.BuildRules(cfg)
	if err != nil {
		slog.Error("invalid rules", "error", err)
		os.Exit(1)
	}

	sym, err := standinSymbol(fullName, kindName)
	if err != nil {
		slog.Error("cannot interpret symbol", "name", fullName, "error", err)
		os.Exit(2)
	}

	settings, err := rules.Resolve(sym, ruleList, reg)
	if err != nil {
		slog.Error("resolution failed", "error", err)
		os.Exit(1)
	}

	if len(settings) == 0 {
		fmt.Printf("%s: no protections\n", fullName)
		return
	}
	ids := make([]string, 0, len(settings))
	for id := range settings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("%s: %s %v\n", fullName, id, settings[id])
	}
}

// standinSymbol constructs a throwaway symbol whose full name and kind match
// the query, enough for rule predicates to evaluate against.
func standinSymbol(fullName, kindName string) (model.Symbol, error) {
	typePart, member, isMember := strings.Cut(fullName, "::")

	ns, name := "", typePart
	if i := strings.LastIndexByte(typePart, '.'); i >= 0 {
		ns, name = typePart[:i], typePart[i+1:]
	}
	t := model.NewModule("standin").AddType(ns, name)
	if !isMember {
		if kindName != "type" {
			return nil, fmt.Errorf("kind %q needs a Type::Member name", kindName)
		}
		return t, nil
	}

	switch kindName {
	case "method":
		return t.AddMethod(member), nil
	case "field":
		return t.AddField(member, nil), nil
	case "property":
		return t.AddProperty(member, nil), nil
	case "event":
		return t.AddEvent(member), nil
	}
	return nil, fmt.Errorf("unknown member kind %q", kindName)
}

func runLookup(ctx context.Context, cfg *config.Config, query string) {
	module, name, ok := strings.Cut(query, ":")
	if !ok {
		slog.Error("lookup format is module:name", "got", query)
		os.Exit(2)
	}
	if !cfg.History.Enabled {
		slog.Error("rename-map history is disabled in config")
		os.Exit(1)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Error("cannot open rename map", "path", cfg.History.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	old, err := store.Lookup(ctx, module, name)
	if err != nil {
		slog.Error("lookup failed", "error", err)
		os.Exit(1)
	}
	if old == "" {
		fmt.Printf("%s: no mapping\n", query)
		return
	}
	fmt.Printf("%s -> %s\n", query, old)
}
