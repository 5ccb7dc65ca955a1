package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	WizardSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wizard_sessions_active",
			Help: "Wizard sessions with a live controller",
		},
	)

	WizardStepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_transitions_total",
			Help: "Wizard step changes",
		},
		[]string{"from", "to"},
	)

	AssessmentResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_results_total",
			Help: "Assessment results served by risk level",
		},
		[]string{"level"},
	)

	NutritionPlans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrition_plans_derived_total",
			Help: "Nutrition plans derived by animal type and goal",
		},
		[]string{"animal_type", "goal"},
	)
)
