package repository

import (
	"context"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Gift defines the interface for gift transfer persistence.
type Gift interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	BeginTx(ctx context.Context) (GiftTx, error)
}

// GiftTx is the transactional scope of a single gift: the ownership
// reassignment and the audit row commit or fail together.
type GiftTx interface {
	InventoryTx
	InsertGift(ctx context.Context, gift *domain.Gift) error
}
