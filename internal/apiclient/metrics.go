package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storysite_backend_requests_total",
		Help: "Количество запросов к REST бэкенду по методу и коду ответа.",
	},
	[]string{"method", "status"},
)
