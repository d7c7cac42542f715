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
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	GachaRolls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGachaRolls,
			Help: HelpTextGachaRolls,
		},
	)

	RewardsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsDropped,
			Help: HelpTextRewardsDropped,
		},
		[]string{LabelRarity},
	)

	GiftsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGiftsSent,
			Help: HelpTextGiftsSent,
		},
	)

	TradeOffers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradeOffers,
			Help: HelpTextTradeOffers,
		},
		[]string{LabelOutcome},
	)

	ListingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingTransitions,
			Help: HelpTextListingTransitions,
		},
		[]string{LabelTransition},
	)
)
