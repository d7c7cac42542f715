package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Inventory defines the non-transactional read/write surface over owned
// reward instances. Ownership transfers never go through this interface;
// they require an InventoryTx.
type Inventory interface {
	// InsertInstance persists one newly created instance.
	InsertInstance(ctx context.Context, instance *domain.RewardInstance) error

	// GetInstanceByID returns domain.ErrInstanceNotFound if absent.
	GetInstanceByID(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error)

	// GetInstancesByOwner lists a user's instances, newest first.
	GetInstancesByOwner(ctx context.Context, ownerUserID string) ([]domain.RewardInstance, error)

	// GetOwnedRewards lists a user's instances joined with their definitions,
	// newest first.
	GetOwnedRewards(ctx context.Context, ownerUserID string) ([]domain.OwnedReward, error)

	// MarkRewardsSeen clears the is_new flag on all of a user's instances.
	MarkRewardsSeen(ctx context.Context, ownerUserID string) error
}
