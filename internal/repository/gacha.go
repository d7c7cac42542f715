package repository

import (
	"context"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Gacha defines what the allocator needs from persistence: the catalog to
// draw from and a way to persist each created instance individually.
// Per-roll inserts are deliberately independent - a failure partway through
// a multi-roll sequence must not roll back instances already persisted.
type Gacha interface {
	GetAllDefinitions(ctx context.Context) ([]domain.RewardDefinition, error)
	InsertInstance(ctx context.Context, instance *domain.RewardInstance) error
}
