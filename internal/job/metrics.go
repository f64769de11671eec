package job

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_server_jobs_total",
		Help: "Finished generation jobs by kind and outcome.",
	}, []string{"kind", "status"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lesson_server_job_duration_seconds",
		Help:    "Wall time of a full generation pipeline.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"kind"})

	slidesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_server_slides_rendered_total",
		Help: "Slides rasterized to PNG.",
	}, []string{"kind"})
)
