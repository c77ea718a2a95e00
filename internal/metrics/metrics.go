// Package metrics holds the prometheus collectors shared by the usecases.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "swappi"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	ProfileSaves     *prometheus.CounterVec
	MediaUploads     *prometheus.CounterVec
	SkippedDocuments prometheus.Counter
	MatchesRecorded  prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProfileSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_saves_total",
			Help:      "Profile save attempts by result.",
		}, []string{"result"}),
		MediaUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Blob uploads by media kind and result.",
		}, []string{"kind", "result"}),
		SkippedDocuments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_profile_documents_total",
			Help:      "Profile documents skipped during candidate fetch because they failed to decode.",
		}),
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_recorded_total",
			Help:      "Match records written.",
		}),
	}
	reg.MustRegister(m.ProfileSaves, m.MediaUploads, m.SkippedDocuments, m.MatchesRecorded)
	return m
}

// NewNop returns collectors that are not registered anywhere.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
