package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Trade defines the interface for trade offer persistence.
type Trade interface {
	CreateOffer(ctx context.Context, offer *domain.TradeOffer) error

	// GetOffer returns domain.ErrOfferNotFound if absent.
	GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.TradeOffer, error)

	// GetOffersForUser lists offers where the user is either party, newest first.
	GetOffersForUser(ctx context.Context, userID string, limit int) ([]domain.TradeOffer, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetInstancesByOwner(ctx context.Context, ownerUserID string) ([]domain.RewardInstance, error)

	BeginTx(ctx context.Context) (TradeTx, error)
}

// TradeTx is the transactional scope of an offer resolution. The status
// transition away from pending is the serialization point: concurrent
// resolutions of one offer race on UpdateOfferStatusIfPending and at most
// one observes a non-zero row count.
type TradeTx interface {
	InventoryTx

	// UpdateOfferStatusIfPending transitions the offer out of pending and
	// returns the number of rows affected. Zero means the offer was already
	// resolved (or never existed) - the caller must treat that as a state
	// conflict and roll back.
	UpdateOfferStatusIfPending(ctx context.Context, offerID uuid.UUID, status domain.TradeStatus) (int64, error)
}
