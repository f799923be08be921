package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frenchvocabs_jobs_started_total",
		Help: "Generator jobs started, by job type.",
	}, []string{"job_type"})

	jobsStopped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frenchvocabs_jobs_stopped_total",
		Help: "Stop requests that cleared the job slot.",
	})

	startsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frenchvocabs_job_starts_rejected_total",
		Help: "Start requests rejected because a job was already running.",
	})
)
