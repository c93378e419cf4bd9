package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	traversalLabel = "traversal"
	eventKindLabel = "kind"
)

var (
	framesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyline_frames_rendered",
		Help: "The number of frames rendered.",
	}, []string{
		traversalLabel,
	})

	traversalEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyline_traversal_events",
		Help: "The events delivered to column visitors.",
	}, []string{
		traversalLabel,
		eventKindLabel,
	})

	subtreesPruned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyline_subtrees_pruned",
		Help: "The events answered with Stop by column visitors.",
	}, []string{
		traversalLabel,
	})

	frameLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyline_frame_render_seconds",
		Help:    "The time to render one frame.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{
		traversalLabel,
	})

	heightFieldsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skyline_height_fields",
		Help: "The height fields currently held by the viewer registry.",
	})
)

func instrumentFrame(stats FrameStats) {
	labels := prometheus.Labels{traversalLabel: stats.Traversal}

	framesRendered.With(labels).Inc()
	frameLatency.With(labels).Observe(stats.Duration.Seconds())
	subtreesPruned.With(labels).Add(float64(stats.Pruned))

	traversalEvents.
		With(prometheus.Labels{
			traversalLabel: stats.Traversal,
			eventKindLabel: "leaf",
		}).
		Add(float64(stats.Leaves))
	traversalEvents.
		With(prometheus.Labels{
			traversalLabel: stats.Traversal,
			eventKindLabel: "interior",
		}).
		Add(float64(stats.Events - stats.Leaves))
}

func instrumentHeightFields(n int) {
	heightFieldsLive.Set(float64(n))
}
