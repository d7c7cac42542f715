package domain

import (
	"time"

	"github.com/google/uuid"
)

// TradeStatus represents the lifecycle state of a trade offer
type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
)

// TradeOffer is a bilateral exchange proposal between two users.
//
// OfferedInstanceIDs reference concrete instances owned by FromUserID at
// proposal time; ownership is re-validated at acceptance time since it may
// have changed in between. RequestedDefinitionIDs name desired reward kinds,
// not reserved instances - the responder chooses which of their own matching
// instances to surrender when accepting.
type TradeOffer struct {
	ID                     uuid.UUID   `json:"id" db:"offer_id"`
	FromUserID             string      `json:"from_user_id" db:"from_user_id"`
	ToUserID               string      `json:"to_user_id" db:"to_user_id"`
	OfferedInstanceIDs     []uuid.UUID `json:"offered_instance_ids" db:"offered_instance_ids"`
	RequestedDefinitionIDs []uuid.UUID `json:"requested_definition_ids" db:"requested_definition_ids"`
	Message                string      `json:"message,omitempty" db:"message"`
	Status                 TradeStatus `json:"status" db:"status"`
	CreatedAt              time.Time   `json:"created_at" db:"created_at"`
}

// Resolved reports whether the offer has reached a terminal state.
func (o *TradeOffer) Resolved() bool {
	return o.Status != TradePending
}
