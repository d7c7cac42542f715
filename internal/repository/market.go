package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// Market defines the interface for marketplace listing persistence.
type Market interface {
	// CreateListing persists a listing in active status. The store enforces
	// at most one active listing per instance; a violation surfaces as
	// domain.ErrStateConflict.
	CreateListing(ctx context.Context, listing *domain.Listing) error

	// GetListing returns domain.ErrListingNotFound if absent.
	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)

	// GetActiveListings lists active listings with reward and seller
	// metadata, newest first.
	GetActiveListings(ctx context.Context, limit int) ([]domain.ListingView, error)

	GetInstanceByID(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error)

	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx is the transactional scope of a claim or withdrawal. The
// active-to-terminal status transition is the serialization point for
// racing claimants.
type MarketTx interface {
	InventoryTx

	// UpdateListingStatusIfActive transitions the listing out of active and
	// returns the number of rows affected. Zero means the listing was already
	// claimed or withdrawn - the loser of a race sees zero and must fail with
	// a state conflict.
	UpdateListingStatusIfActive(ctx context.Context, listingID uuid.UUID, status domain.ListingStatus) (int64, error)
}
