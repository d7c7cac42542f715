package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Tx is the common contract for transactional operations.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// InventoryTx exposes the inventory mutations available inside a transaction.
// Every ownership check and reassignment of a two-sided swap must go through
// one InventoryTx so that no other transaction can observe an intermediate
// state.
type InventoryTx interface {
	Tx

	// GetInstanceForUpdate reads one instance and row-locks it for the
	// remainder of the transaction. Returns domain.ErrInstanceNotFound if the
	// instance does not exist.
	GetInstanceForUpdate(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error)

	// LockInstances row-locks the given instances in deterministic (sorted)
	// order and returns them. Missing ids are an error: the caller referenced
	// an instance that no longer exists.
	LockInstances(ctx context.Context, instanceIDs []uuid.UUID) ([]domain.RewardInstance, error)

	// UpdateInstanceOwner reassigns ownership of a single instance.
	UpdateInstanceOwner(ctx context.Context, instanceID uuid.UUID, ownerUserID string) error
}
