package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Catalog defines the interface for reward definition persistence.
// The engine only ever reads definitions; InsertDefinition exists for
// seeding and tests.
type Catalog interface {
	GetAllDefinitions(ctx context.Context) ([]domain.RewardDefinition, error)
	GetDefinitionByID(ctx context.Context, id uuid.UUID) (*domain.RewardDefinition, error)
	GetDefinitionsByRarity(ctx context.Context, tier domain.RarityTier) ([]domain.RewardDefinition, error)
	InsertDefinition(ctx context.Context, def *domain.RewardDefinition) error
}
