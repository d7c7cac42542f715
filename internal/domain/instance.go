package domain

import (
	"time"

	"github.com/google/uuid"
)

// RewardInstance is one concrete owned unit of a reward definition.
// Each instance has exactly one owner at any time; transfers reassign
// OwnerUserID inside a transaction and never copy the row.
type RewardInstance struct {
	ID           uuid.UUID `json:"id" db:"instance_id"`
	OwnerUserID  string    `json:"owner_user_id" db:"owner_user_id"`
	DefinitionID uuid.UUID `json:"reward_definition_id" db:"reward_definition_id"`
	AcquiredAt   time.Time `json:"acquired_at" db:"acquired_at"`
	IsNew        bool      `json:"is_new" db:"is_new"`
}

// OwnedReward joins an instance with its catalog definition for read surfaces.
type OwnedReward struct {
	Instance   RewardInstance   `json:"instance"`
	Definition RewardDefinition `json:"definition"`
}
