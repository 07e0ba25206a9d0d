package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storysite_request_cache_hits_total",
		Help: "Чтения, отданные из кэша без запроса к бэкенду.",
	})
	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storysite_request_cache_misses_total",
		Help: "Чтения, потребовавшие запроса к бэкенду.",
	})
	sharedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storysite_request_cache_shared_total",
		Help: "Вызовы, получившие результат общего запроса.",
	})
	errorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storysite_request_cache_fetch_errors_total",
		Help: "Неуспешные загрузки (не кэшируются).",
	})
	entriesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storysite_request_cache_entries",
		Help: "Текущее количество записей в кэше.",
	})
)
