// Package metrics exposes engagement outcome counters. Duplicate suppressions
// and store-read failures get their own series so the empty-list fallback on
// the comments read path stays observable even though clients always see 200.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engagement counts like/comment outcomes by target endpoint.
type Engagement struct {
	Likes           *prometheus.CounterVec
	Comments        *prometheus.CounterVec
	Duplicates      *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
	StoreReadErrors *prometheus.CounterVec
}

// New registers the engagement counters on the given registerer.
func New(reg prometheus.Registerer) *Engagement {
	factory := promauto.With(reg)
	return &Engagement{
		Likes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_likes_total",
			Help: "Successful like increments.",
		}, []string{"endpoint"}),
		Comments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_comments_total",
			Help: "Successfully persisted comments.",
		}, []string{"endpoint"}),
		Duplicates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_duplicates_total",
			Help: "Actions suppressed by a valid duplicate-prevention token.",
		}, []string{"action"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_rejected_total",
			Help: "Comments rejected by validation or the denylist.",
		}, []string{"reason"}),
		StoreReadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "engagement_store_read_errors_total",
			Help: "Content store read failures degraded to empty responses.",
		}, []string{"endpoint"}),
	}
}
