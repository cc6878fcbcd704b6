package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "chronofarm_http_requests_total"
	MetricNameHTTPRequestDuration  = "chronofarm_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "chronofarm_http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished  = "chronofarm_events_published_total"
	MetricNameListenerFailures = "chronofarm_listener_failures_total"
)

// Game metric names
const (
	MetricNamePlantsPlanted        = "chronofarm_plants_planted_total"
	MetricNamePlantsHarvested      = "chronofarm_plants_harvested_total"
	MetricNamePlantErrors          = "chronofarm_plant_errors_total"
	MetricNameTravels              = "chronofarm_travels_total"
	MetricNameErasUnlocked         = "chronofarm_eras_unlocked_total"
	MetricNameAchievementsUnlocked = "chronofarm_achievements_unlocked_total"
	MetricNameSaves                = "chronofarm_saves_total"
	MetricNameLoads                = "chronofarm_loads_total"
	MetricNameTickDuration         = "chronofarm_tick_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished  = "Total number of events published by topic"
	HelpTextListenerFailures = "Total number of event listener errors and panics"
)

// Game metric help text
const (
	HelpTextPlantsPlanted        = "Total number of seeds planted by species"
	HelpTextPlantsHarvested      = "Total number of plants harvested by species"
	HelpTextPlantErrors          = "Total number of rejected plot operations"
	HelpTextTravels              = "Total number of travel requests by destination and outcome"
	HelpTextErasUnlocked         = "Total number of era unlocks"
	HelpTextAchievementsUnlocked = "Total number of achievement unlocks"
	HelpTextSaves                = "Total number of saves"
	HelpTextLoads                = "Total number of loads by source"
	HelpTextTickDuration         = "Duration of a simulation tick in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelTopic       = "topic"
	LabelSpecies     = "species"
	LabelAction      = "action"
	LabelReason      = "reason"
	LabelEra         = "era"
	LabelOutcome     = "outcome"
	LabelAchievement = "achievement"
	LabelSource      = "source"
)

// OutcomeSuccess is the travel outcome label of a committed journey; failures
// carry their reason code
const OutcomeSuccess = "success"

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// TickLatencyBuckets covers ticks from 50us to 250ms
var TickLatencyBuckets = []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCollectorRegistered = "Event metrics collector registered"
)
