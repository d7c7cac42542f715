package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RarityTier classifies a reward definition and drives its gacha drop weight.
type RarityTier string

const (
	RarityCommon    RarityTier = "common"
	RarityUncommon  RarityTier = "uncommon"
	RarityRare      RarityTier = "rare"
	RarityEpic      RarityTier = "epic"
	RarityLegendary RarityTier = "legendary"
)

// AllRarityTiers lists every tier in ascending rarity order.
var AllRarityTiers = []RarityTier{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
}

// Valid reports whether the tier is one of the known values.
func (t RarityTier) Valid() bool {
	switch t {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// RewardDefinition is an immutable catalog entry describing a reward kind.
// Definitions are created by catalog seeding and never mutated by the engine.
type RewardDefinition struct {
	ID          uuid.UUID       `json:"id" db:"reward_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Icon        string          `json:"icon" db:"icon"`
	Rarity      RarityTier      `json:"rarity" db:"rarity"`
	RewardType  *string         `json:"reward_type,omitempty" db:"reward_type"`
	RewardValue json.RawMessage `json:"reward_value,omitempty" db:"reward_value"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
