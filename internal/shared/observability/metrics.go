package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ReferencesRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shroud_references_registered_total",
		Help: "Total number of symbol references registered, by reference kind.",
	}, []string{"kind"})

	RenamesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shroud_renames_committed_total",
		Help: "Total number of symbol renames committed.",
	})

	RenamesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shroud_renames_rejected_total",
		Help: "Total number of proposed renames vetoed by a registered reference.",
	})

	SymbolsPinned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shroud_symbols_pinned_total",
		Help: "Total number of symbols pinned as permanently non-renamable.",
	})

	DocumentsRewritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shroud_markup_documents_rewritten_total",
		Help: "Total number of markup documents re-serialized under a new name.",
	})

	TraceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shroud_dataflow_trace_failures_total",
		Help: "Total number of registration calls whose name argument could not be traced.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shroud_analysis_seconds",
		Help:    "Time spent on per-module analysis passes.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pass"})
)
