package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storysite_admin_login_attempts_total",
		Help: "Admin login attempts by result.",
	}, []string{"result"})

	adminWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storysite_admin_writes_total",
		Help: "Successful admin writes by entity and action.",
	}, []string{"entity", "action"})

	donationsSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storysite_donations_submitted_total",
		Help: "Donations submitted from the storefront by mode and result.",
	}, []string{"mode", "result"})

	preferenceChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storysite_preference_changes_total",
		Help: "Reader preference changes by kind.",
	}, []string{"kind"})

	preferenceSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storysite_preference_sockets",
		Help: "Open preference websocket connections.",
	})
)
