package metrics

import (
	"context"

	"github.com/quizdojo/reward-engine/internal/event"
	"github.com/quizdojo/reward-engine/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RewardDropped,
		event.GiftSent,
		event.TradeProposed,
		event.TradeAccepted,
		event.TradeRejected,
		event.ListingCreated,
		event.ListingClaimed,
		event.ListingWithdrawn,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RewardDropped:
		payload, ok := evt.Payload.(event.RewardDroppedPayloadV1)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		GachaRolls.Add(float64(payload.Rolls))
		for _, reward := range payload.Rewards {
			RewardsDropped.WithLabelValues(reward.Rarity).Inc()
		}

	case event.GiftSent:
		GiftsSent.Inc()

	case event.TradeProposed:
		TradeOffers.WithLabelValues(OutcomeProposed).Inc()
	case event.TradeAccepted:
		TradeOffers.WithLabelValues(OutcomeAccepted).Inc()
	case event.TradeRejected:
		TradeOffers.WithLabelValues(OutcomeRejected).Inc()

	case event.ListingCreated:
		ListingTransitions.WithLabelValues(TransitionCreated).Inc()
	case event.ListingClaimed:
		ListingTransitions.WithLabelValues(TransitionClaimed).Inc()
	case event.ListingWithdrawn:
		ListingTransitions.WithLabelValues(TransitionWithdrawn).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
