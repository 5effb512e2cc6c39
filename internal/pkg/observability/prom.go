package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "lims"
)

var (
	PatientSyncOutcome = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "patient", "sync_outcome_total"),
		Help: "Outcomes of patient create and sync requests",
	}, []string{"outcome", "source_name"})
	PatientSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "patient", "sync_duration_seconds"),
		Help:    "Duration of patient reconciliation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{})
	StorageReparented = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "storage", "reparented_total"),
		Help: "Rows moved to a new container by storage location deletes",
	}, []string{"kind"})
	GridCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "box", "grid_cells"),
		Help:    "Number of cells in projected box grids",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	ManifestBoxes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "shipment", "manifest_boxes"),
		Help:    "Number of boxes in generated shipment manifests",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "auth", "attempts_total"),
		Help: "Token authentication attempts by result",
	}, []string{"result"})
)
