// # internal/core/app/service.go
package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shroud/internal/analysis"
	"shroud/internal/core/config"
	"shroud/internal/core/errors"
	"shroud/internal/diag"
	"shroud/internal/history"
	"shroud/internal/markup"
	"shroud/internal/model"
	"shroud/internal/renamer"
	"shroud/internal/rules"
	"shroud/internal/scanner"
	"shroud/internal/shared/observability"
)

// Service drives one protection run over a set of modules: rule
// resolution, the analysis passes, and the rename commit. All state is
// scoped to the run and discarded with it.
type Service struct {
	cfg     *config.Config
	codec   markup.Codec
	tracer  analysis.TraceService
	store   *history.Store
	defMode model.RenameMode
}

func NewService(cfg *config.Config, codec markup.Codec, tracer analysis.TraceService, store *history.Store) (*Service, error) {
	mode, err := model.ParseRenameMode(cfg.Naming.Mode)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:     cfg,
		codec:   codec,
		tracer:  tracer,
		store:   store,
		defMode: mode,
	}, nil
}

// Run executes the full pipeline. Configuration errors abort before any
// mutation; analysis failures are recovered locally by the passes
// themselves. Renames commit module by module under the single-writer
// rule: one module's commit never interleaves with another pass over the
// same module.
func (s *Service) Run(ctx context.Context, modules ...*model.Module) (*renamer.Service, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Run",
		trace.WithAttributes(attribute.Int("modules", len(modules))))
	defer span.End()

	reg, err := config.BuildRegistry(s.cfg)
	if err != nil {
		return nil, err
	}
	ruleList, err := config.BuildRules(s.cfg)
	if err != nil {
		return nil, err
	}

	actx := analysis.NewContext(modules...)
	sink := diag.NewLogSink(actx.RunID)
	svc := renamer.NewService(renamer.NewSeqGenerator(), sink)
	scan := scanner.New(actx, svc, sink)
	mk := markup.NewAnalyzer(actx, svc, s.codec, s.tracer, sink)

	start := time.Now()

	// Settings resolution and read-only analysis, per module.
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := rules.Apply(m, ruleList, reg); err != nil {
			return nil, errors.AddContext(err, errors.CtxModule, m.Name)
		}
		if err := scan.ScanModule(ctx, m); err != nil {
			return nil, err
		}
		if err := mk.AnalyzeModule(ctx, m); err != nil {
			return nil, err
		}
		if err := mk.DiscoverDocuments(ctx, m); err != nil {
			return nil, err
		}
	}

	// Commit, one module at a time.
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := svc.RenameModule(ctx, m); err != nil {
			return nil, err
		}
		if err := mk.RenameDocuments(ctx, m, s.defMode); err != nil {
			return nil, err
		}
		if err := mk.RegenerateContainers(m); err != nil {
			return nil, err
		}
	}

	if s.store != nil {
		if err := s.store.RecordRun(ctx, actx.RunID, svc.Renamed()); err != nil {
			slog.Warn("failed to persist rename map", "error", err)
		}
	}

	slog.Info("protection run complete",
		"run", actx.RunID,
		"modules", len(modules),
		"renamed", len(svc.Renamed()),
		"duration", time.Since(start))
	return svc, nil
}
