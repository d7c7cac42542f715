package market

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/event"
	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// Service defines the marketplace interface
type Service interface {
	// ListItem puts one owned instance on the marketplace. An instance can
	// back at most one active listing at a time.
	ListItem(ctx context.Context, sellerID string, instanceID uuid.UUID, askingDescription string) (*domain.Listing, error)

	// ClaimListing takes an active listing by offering one of the
	// claimant's own instances in return. The claim is a one-shot terminal
	// transition; a losing concurrent claimant gets a state conflict and
	// must try a different listing.
	ClaimListing(ctx context.Context, listingID uuid.UUID, claimantID string, offeredInstanceID uuid.UUID) (*domain.Listing, error)

	// WithdrawListing takes an active listing down. Seller only.
	WithdrawListing(ctx context.Context, listingID uuid.UUID, sellerID string) (*domain.Listing, error)

	// GetActiveListings returns the public browse feed, newest first.
	GetActiveListings(ctx context.Context) ([]domain.ListingView, error)

	GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
}

type service struct {
	repo      repository.Market
	eventBus  event.Bus
	feedLimit int
}

// NewService creates a new marketplace service
func NewService(repo repository.Market, eventBus event.Bus, feedLimit int) Service {
	if feedLimit <= 0 {
		feedLimit = DefaultListingFeedLimit
	}
	return &service{
		repo:      repo,
		eventBus:  eventBus,
		feedLimit: feedLimit,
	}
}

func (s *service) ListItem(ctx context.Context, sellerID string, instanceID uuid.UUID, askingDescription string) (*domain.Listing, error) {
	log := logger.FromContext(ctx)

	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}

	instance, err := s.repo.GetInstanceByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.OwnerUserID != sellerID {
		return nil, fmt.Errorf("%w: instance %s", domain.ErrNotOwned, instanceID)
	}

	listing := &domain.Listing{
		ID:                uuid.New(),
		SellerUserID:      sellerID,
		ListedInstanceID:  instanceID,
		AskingDescription: askingDescription,
		Status:            domain.ListingActive,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	log.Info("Listing created", "listing_id", listing.ID, "seller", sellerID, "instance_id", instanceID)
	s.publish(ctx, event.ListingCreated, listing, "")

	return listing, nil
}

func (s *service) ClaimListing(ctx context.Context, listingID uuid.UUID, claimantID string, offeredInstanceID uuid.UUID) (*domain.Listing, error) {
	log := logger.FromContext(ctx)

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerUserID == claimantID {
		return nil, fmt.Errorf("%w: cannot claim your own listing", domain.ErrInvalidTarget)
	}
	if listing.Status != domain.ListingActive {
		return nil, fmt.Errorf("%w: listing is %s", domain.ErrStateConflict, listing.Status)
	}
	if offeredInstanceID == listing.ListedInstanceID {
		return nil, fmt.Errorf("%w: offered instance is the listed instance", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Serialization point: of any number of concurrent claims on this
	// listing, exactly one observes a non-zero row count.
	rows, err := tx.UpdateListingStatusIfActive(ctx, listingID, domain.ListingClaimed)
	if err != nil {
		return nil, fmt.Errorf("failed to transition listing: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: listing already claimed or withdrawn", domain.ErrStateConflict)
	}

	instances, err := tx.LockInstances(ctx, []uuid.UUID{listing.ListedInstanceID, offeredInstanceID})
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.RewardInstance, len(instances))
	for _, inst := range instances {
		byID[inst.ID] = inst
	}

	if byID[listing.ListedInstanceID].OwnerUserID != listing.SellerUserID {
		return nil, fmt.Errorf("%w: seller no longer owns listed instance %s", domain.ErrNotOwned, listing.ListedInstanceID)
	}
	if byID[offeredInstanceID].OwnerUserID != claimantID {
		return nil, fmt.Errorf("%w: instance %s", domain.ErrNotOwned, offeredInstanceID)
	}

	if err := tx.UpdateInstanceOwner(ctx, listing.ListedInstanceID, claimantID); err != nil {
		return nil, fmt.Errorf("failed to transfer listed instance: %w", err)
	}
	if err := tx.UpdateInstanceOwner(ctx, offeredInstanceID, listing.SellerUserID); err != nil {
		return nil, fmt.Errorf("failed to transfer offered instance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}

	listing.Status = domain.ListingClaimed
	log.Info("Listing claimed", "listing_id", listing.ID, "seller", listing.SellerUserID, "claimant", claimantID)
	s.publish(ctx, event.ListingClaimed, listing, claimantID)

	return listing, nil
}

func (s *service) WithdrawListing(ctx context.Context, listingID uuid.UUID, sellerID string) (*domain.Listing, error) {
	log := logger.FromContext(ctx)

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerUserID != sellerID {
		return nil, fmt.Errorf("%w: only the seller may withdraw", domain.ErrInvalidTarget)
	}
	if listing.Status != domain.ListingActive {
		return nil, fmt.Errorf("%w: listing is %s", domain.ErrStateConflict, listing.Status)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	rows, err := tx.UpdateListingStatusIfActive(ctx, listingID, domain.ListingWithdrawn)
	if err != nil {
		return nil, fmt.Errorf("failed to transition listing: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: listing already claimed or withdrawn", domain.ErrStateConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	listing.Status = domain.ListingWithdrawn
	log.Info("Listing withdrawn", "listing_id", listing.ID, "seller", sellerID)
	s.publish(ctx, event.ListingWithdrawn, listing, "")

	return listing, nil
}

func (s *service) GetActiveListings(ctx context.Context) ([]domain.ListingView, error) {
	return s.repo.GetActiveListings(ctx, s.feedLimit)
}

func (s *service) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	return s.repo.GetListing(ctx, listingID)
}

func (s *service) publish(ctx context.Context, eventType event.Type, listing *domain.Listing, claimedBy string) {
	if s.eventBus == nil {
		return
	}
	evt := event.NewListingEvent(eventType, listing.ID, listing.SellerUserID, claimedBy, listing.ListedInstanceID)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish listing event", "type", eventType, "error", err)
	}
}
