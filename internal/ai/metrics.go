package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Replies produced, by source (model or fallback).",
		},
		[]string{"source"},
	)

	invocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_model_invocations_total",
			Help: "Upstream model invocation attempts.",
		},
		[]string{"model"},
	)

	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_model_failures_total",
			Help: "Failed upstream invocations, by failure reason.",
		},
		[]string{"model", "reason"},
	)

	suppressionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_model_suppressions_total",
			Help: "Times a model was skipped while cooling down.",
		},
		[]string{"model"},
	)
)
