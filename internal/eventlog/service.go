package eventlog

import (
	"context"
	"encoding/json"

	"github.com/quizdojo/reward-engine/internal/event"
	"github.com/quizdojo/reward-engine/internal/logger"
)

// Service persists every published domain event as an audit row
type Service interface {
	// Subscribe registers the audit logger on all domain event types
	Subscribe(bus event.Bus) error

	// GetEvents retrieves audit rows, newest first
	GetEvents(ctx context.Context, filter Filter) ([]Record, error)

	// CleanupOldEvents removes rows older than the retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new audit trail service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers the audit handler for all domain event types
func (s *service) Subscribe(bus event.Bus) error {
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
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent writes one audit row per published event. Rows record the
// acting user so per-user history queries do not need to parse payloads.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		log.Error(LogMsgFailedToEncodePayload, "error", err, "type", evt.Type)
		return nil
	}

	userID := actorFor(evt)

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, raw); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

// actorFor extracts the user who triggered the event from its typed payload.
func actorFor(evt event.Event) *string {
	switch payload := evt.Payload.(type) {
	case event.RewardDroppedPayloadV1:
		return &payload.UserID
	case event.GiftSentPayloadV1:
		return &payload.SenderUserID
	case event.TradePayloadV1:
		// Proposals are acted by the proposer, resolutions by the recipient.
		if evt.Type == event.TradeProposed {
			return &payload.FromUserID
		}
		return &payload.ToUserID
	case event.ListingPayloadV1:
		if evt.Type == event.ListingClaimed && payload.ClaimedBy != "" {
			return &payload.ClaimedBy
		}
		return &payload.SellerUserID
	}
	return nil
}

func (s *service) GetEvents(ctx context.Context, filter Filter) ([]Record, error) {
	return s.repo.GetEvents(ctx, filter)
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
