package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Common event types
const (
	RewardDropped Type = "reward.dropped"
	GiftSent      Type = "gift.sent"

	// Trade event types
	TradeProposed Type = "trade.proposed"
	TradeAccepted Type = "trade.accepted"
	TradeRejected Type = "trade.rejected"

	// Marketplace event types
	ListingCreated   Type = "listing.created"
	ListingClaimed   Type = "listing.claimed"
	ListingWithdrawn Type = "listing.withdrawn"
)

// Typed event payloads for type safety

// DroppedRewardV1 describes a single allocated reward within a drop event
type DroppedRewardV1 struct {
	InstanceID   string `json:"instance_id"`
	DefinitionID string `json:"definition_id"`
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
}

// RewardDroppedPayloadV1 is the typed payload for reward drop events
type RewardDroppedPayloadV1 struct {
	UserID     string            `json:"user_id"`
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Percentage float64           `json:"percentage"`
	Rolls      int               `json:"rolls"`
	Rewards    []DroppedRewardV1 `json:"rewards"`
	Timestamp  int64             `json:"timestamp"`
}

// GiftSentPayloadV1 is the typed payload for gift events
type GiftSentPayloadV1 struct {
	GiftID          string `json:"gift_id"`
	SenderUserID    string `json:"sender_user_id"`
	RecipientUserID string `json:"recipient_user_id"`
	InstanceID      string `json:"instance_id"`
	Timestamp       int64  `json:"timestamp"`
}

// TradePayloadV1 is the typed payload for trade lifecycle events
type TradePayloadV1 struct {
	OfferID       string `json:"offer_id"`
	FromUserID    string `json:"from_user_id"`
	ToUserID      string `json:"to_user_id"`
	OfferedCount  int    `json:"offered_count"`
	AcceptedCount int    `json:"accepted_count,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// ListingPayloadV1 is the typed payload for marketplace listing events
type ListingPayloadV1 struct {
	ListingID    string `json:"listing_id"`
	SellerUserID string `json:"seller_user_id"`
	ClaimedBy    string `json:"claimed_by,omitempty"`
	InstanceID   string `json:"instance_id"`
	Timestamp    int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewRewardDroppedEvent creates a new reward drop event with type-safe payload
func NewRewardDroppedEvent(userID string, score, total int, percentage float64, rolls int, rewards []DroppedRewardV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardDropped,
		Payload: RewardDroppedPayloadV1{
			UserID:     userID,
			Score:      score,
			Total:      total,
			Percentage: percentage,
			Rolls:      rolls,
			Rewards:    rewards,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewGiftSentEvent creates a new gift sent event
func NewGiftSentEvent(giftID uuid.UUID, senderID, recipientID string, instanceID uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GiftSent,
		Payload: GiftSentPayloadV1{
			GiftID:          giftID.String(),
			SenderUserID:    senderID,
			RecipientUserID: recipientID,
			InstanceID:      instanceID.String(),
			Timestamp:       time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTradeEvent creates a trade lifecycle event of the given type
func NewTradeEvent(eventType Type, offerID uuid.UUID, fromUserID, toUserID string, offeredCount, acceptedCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: TradePayloadV1{
			OfferID:       offerID.String(),
			FromUserID:    fromUserID,
			ToUserID:      toUserID,
			OfferedCount:  offeredCount,
			AcceptedCount: acceptedCount,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewListingEvent creates a marketplace listing lifecycle event of the given type
func NewListingEvent(eventType Type, listingID uuid.UUID, sellerID, claimedBy string, instanceID uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ListingPayloadV1{
			ListingID:    listingID.String(),
			SellerUserID: sellerID,
			ClaimedBy:    claimedBy,
			InstanceID:   instanceID.String(),
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex

	// OnHandlerError, when set, is invoked once per failed handler.
	// Set before the first Publish; not guarded by the mutex.
	OnHandlerError func(eventType Type)
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; a failed handler never blocks the others.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
			if b.OnHandlerError != nil {
				b.OnHandlerError(event.Type)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
