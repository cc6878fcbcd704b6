package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelTopic},
	)

	ListenerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListenerFailures,
			Help: HelpTextListenerFailures,
		},
		[]string{LabelTopic},
	)
)

// Game Metrics
var (
	PlantsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsPlanted,
			Help: HelpTextPlantsPlanted,
		},
		[]string{LabelSpecies},
	)

	PlantsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsHarvested,
			Help: HelpTextPlantsHarvested,
		},
		[]string{LabelSpecies},
	)

	PlantErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantErrors,
			Help: HelpTextPlantErrors,
		},
		[]string{LabelAction, LabelReason},
	)

	Travels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTravels,
			Help: HelpTextTravels,
		},
		[]string{LabelEra, LabelOutcome},
	)

	ErasUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameErasUnlocked,
			Help: HelpTextErasUnlocked,
		},
		[]string{LabelEra},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
		[]string{LabelAchievement},
	)

	Saves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSaves,
			Help: HelpTextSaves,
		},
	)

	Loads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLoads,
			Help: HelpTextLoads,
		},
		[]string{LabelSource},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickDuration,
			Help:    HelpTextTickDuration,
			Buckets: TickLatencyBuckets,
		},
	)
)
