package hexword

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solveTotal counts Solve calls by outcome.
	solveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hexword_solve_total",
		Help: "Total crossword solves by outcome",
	}, []string{"outcome"}) // "solved", "ambiguous", "unsolvable", "error"

	// ringDuration tracks how long one ring takes to propagate.
	ringDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hexword_ring_duration_seconds",
		Help:    "Ring propagation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	})

	// tasksTotal counts propagated tasks.
	tasksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hexword_tasks_total",
		Help: "Total cell tasks propagated",
	})

	// emptyIntersections counts cells whose crossing lines share no letter.
	emptyIntersections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hexword_empty_intersections_total",
		Help: "Total cell tasks whose letter intersection was empty",
	})

	// candidatesKept tracks the number of prefixes a line keeps after a task.
	candidatesKept = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hexword_candidates_per_line",
		Help:    "Candidate prefixes kept per line after a task",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~262k
	})

	// rejectedTotal counts full-length strings dropped by final acceptance.
	rejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hexword_final_rejections_total",
		Help: "Total candidates that survived pruning but failed the full match",
	})
)
