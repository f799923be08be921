package sentences

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frenchvocabs_watcher_scans_total",
		Help: "Input directory scans performed by the sentence watcher.",
	})

	filesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frenchvocabs_wordlists_processed_total",
		Help: "Word list files successfully turned into documents.",
	})

	linesSampled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frenchvocabs_sentence_lines_sampled_total",
		Help: "Numbered sentence lines run through language detection.",
	})

	linesDetectedFrench = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frenchvocabs_sentence_lines_french_total",
		Help: "Sampled sentence lines that detected as French.",
	})
)
