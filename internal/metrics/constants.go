package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameGachaRolls         = "gacha_rolls_total"
	MetricNameRewardsDropped     = "rewards_dropped_total"
	MetricNameGiftsSent          = "gifts_sent_total"
	MetricNameTradeOffers        = "trade_offers_total"
	MetricNameListingTransitions = "listing_transitions_total"
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
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextGachaRolls         = "Total number of gacha rolls performed"
	HelpTextRewardsDropped     = "Total number of reward instances dropped"
	HelpTextGiftsSent          = "Total number of gifts sent"
	HelpTextTradeOffers        = "Total number of trade offer transitions"
	HelpTextListingTransitions = "Total number of marketplace listing transitions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelRarity     = "rarity"
	LabelOutcome    = "outcome"
	LabelTransition = "transition"
)

// Label values for trade outcomes and listing transitions
const (
	OutcomeProposed = "proposed"
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"

	TransitionCreated   = "created"
	TransitionClaimed   = "claimed"
	TransitionWithdrawn = "withdrawn"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
