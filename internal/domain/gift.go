package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gift is the audit record of a completed gift transfer. It is written in
// the same transaction that reassigns the instance, so a gift row always
// corresponds to a transfer that actually happened. There is no undo.
type Gift struct {
	ID              uuid.UUID `json:"id" db:"gift_id"`
	SenderUserID    string    `json:"sender_user_id" db:"sender_user_id"`
	RecipientUserID string    `json:"recipient_user_id" db:"recipient_user_id"`
	InstanceID      uuid.UUID `json:"instance_id" db:"instance_id"`
	Message         string    `json:"message,omitempty" db:"message"`
	SentAt          time.Time `json:"sent_at" db:"sent_at"`
}
