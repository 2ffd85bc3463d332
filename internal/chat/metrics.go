package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopchat_chat_requests_total",
		Help: "Chat turns by classified intent.",
	}, []string{"intent"})

	classifierFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopchat_classifier_fallback_total",
		Help: "Classifications served by the keyword fallback.",
	})
)
