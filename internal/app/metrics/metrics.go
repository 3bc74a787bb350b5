// Package metrics содержит счётчики prometheus приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests считает обработанные HTTP-запросы
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repairdesk",
		Name:      "http_requests_total",
		Help:      "Processed HTTP requests by route and status code.",
	}, []string{"method", "route", "code"})

	// StoreFaults считает ошибки хранилища по видам (busy, integrity, access)
	StoreFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repairdesk",
		Name:      "store_faults_total",
		Help:      "Store access faults by kind.",
	}, []string{"kind"})

	// LifecycleOps считает выполненные операции над заявками
	LifecycleOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "repairdesk",
		Name:      "lifecycle_operations_total",
		Help:      "Request lifecycle operations by kind and outcome.",
	}, []string{"operation", "outcome"})
)
