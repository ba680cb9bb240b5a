package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query kinds used as the "kind" label.
const (
	KindList    = "list"
	KindRelated = "related"
)

// Catalog engine metrics.
var (
	QueryResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_results",
			Help:      "Items returned per query after paging",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"kind"},
	)

	QueryMatched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_matched",
			Help:      "Items matching the filter of a list query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	Items = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "items",
			Help:      "Number of items in the store",
		},
	)

	PersistTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "persist_total",
			Help:      "Snapshot writes by result",
		},
		[]string{"result"}, // "ok" / "error"
	)
)

func init() {
	prometheus.MustRegister(QueryResults)
	prometheus.MustRegister(QueryMatched)
	prometheus.MustRegister(Items)
	prometheus.MustRegister(PersistTotal)
}

// ObserveList records the matched and returned counts of a list query.
func ObserveList(matched, returned int) {
	QueryMatched.Observe(float64(matched))
	QueryResults.WithLabelValues(KindList).Observe(float64(returned))
}

// ObserveRelated records the size of a related-items answer.
func ObserveRelated(returned int) {
	QueryResults.WithLabelValues(KindRelated).Observe(float64(returned))
}

// RecordPersist counts a snapshot write.
func RecordPersist(err error) {
	if err != nil {
		PersistTotal.WithLabelValues("error").Inc()
		return
	}
	PersistTotal.WithLabelValues("ok").Inc()
}
