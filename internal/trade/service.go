package trade

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

// Service defines the trade offer interface
type Service interface {
	// ProposeTrade creates a pending offer. Offered instances must be owned
	// by the proposer at proposal time; they are not reserved and are
	// re-validated at acceptance.
	ProposeTrade(ctx context.Context, fromUserID, toUserID string, offeredInstanceIDs, requestedDefinitionIDs []uuid.UUID, message string) (*domain.TradeOffer, error)

	// AcceptTrade resolves a pending offer and swaps both instance sets
	// atomically. The surrendered instances must cover every requested
	// definition exactly. Only the offer's recipient may accept.
	AcceptTrade(ctx context.Context, offerID uuid.UUID, responderID string, surrenderedInstanceIDs []uuid.UUID) (*domain.TradeOffer, error)

	// RejectTrade resolves a pending offer without moving any instances.
	// Only the offer's recipient may reject.
	RejectTrade(ctx context.Context, offerID uuid.UUID, responderID string) (*domain.TradeOffer, error)

	// GetOffersForUser lists offers where the user is either party.
	GetOffersForUser(ctx context.Context, userID string) ([]domain.TradeOffer, error)

	GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.TradeOffer, error)
}

type service struct {
	repo      repository.Trade
	eventBus  event.Bus
	feedLimit int
}

// NewService creates a new trade service
func NewService(repo repository.Trade, eventBus event.Bus, feedLimit int) Service {
	if feedLimit <= 0 {
		feedLimit = DefaultOfferFeedLimit
	}
	return &service{
		repo:      repo,
		eventBus:  eventBus,
		feedLimit: feedLimit,
	}
}

func (s *service) ProposeTrade(ctx context.Context, fromUserID, toUserID string, offeredInstanceIDs, requestedDefinitionIDs []uuid.UUID, message string) (*domain.TradeOffer, error) {
	log := logger.FromContext(ctx)

	if fromUserID == "" || toUserID == "" {
		return nil, fmt.Errorf("%w: both parties are required", domain.ErrInvalidInput)
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("%w: cannot trade with yourself", domain.ErrInvalidTarget)
	}
	if len(offeredInstanceIDs) == 0 || len(requestedDefinitionIDs) == 0 {
		return nil, fmt.Errorf("%w: offered and requested sets must be non-empty", domain.ErrInvalidInput)
	}
	if hasDuplicates(offeredInstanceIDs) {
		return nil, fmt.Errorf("%w: duplicate offered instances", domain.ErrInvalidInput)
	}

	if _, err := s.repo.GetUserByID(ctx, toUserID); err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	owned, err := s.repo.GetInstancesByOwner(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposer inventory: %w", err)
	}
	ownedSet := make(map[uuid.UUID]bool, len(owned))
	for _, inst := range owned {
		ownedSet[inst.ID] = true
	}
	for _, id := range offeredInstanceIDs {
		if !ownedSet[id] {
			return nil, fmt.Errorf("%w: instance %s", domain.ErrNotOwned, id)
		}
	}

	offer := &domain.TradeOffer{
		ID:                     uuid.New(),
		FromUserID:             fromUserID,
		ToUserID:               toUserID,
		OfferedInstanceIDs:     offeredInstanceIDs,
		RequestedDefinitionIDs: requestedDefinitionIDs,
		Message:                message,
		Status:                 domain.TradePending,
		CreatedAt:              time.Now().UTC(),
	}
	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	log.Info("Trade offer proposed", "offer_id", offer.ID, "from", fromUserID, "to", toUserID)
	s.publish(ctx, event.TradeProposed, offer, 0)

	return offer, nil
}

func (s *service) AcceptTrade(ctx context.Context, offerID uuid.UUID, responderID string, surrenderedInstanceIDs []uuid.UUID) (*domain.TradeOffer, error) {
	log := logger.FromContext(ctx)

	offer, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.ToUserID != responderID {
		return nil, fmt.Errorf("%w: only the offer recipient may respond", domain.ErrInvalidTarget)
	}
	if offer.Resolved() {
		return nil, fmt.Errorf("%w: offer already %s", domain.ErrStateConflict, offer.Status)
	}
	if hasDuplicates(surrenderedInstanceIDs) {
		return nil, fmt.Errorf("%w: duplicate surrendered instances", domain.ErrInvalidInput)
	}
	if overlaps(offer.OfferedInstanceIDs, surrenderedInstanceIDs) {
		return nil, fmt.Errorf("%w: surrendered instances overlap the offered set", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Serialization point: exactly one resolution of this offer can
	// observe a non-zero row count.
	rows, err := tx.UpdateOfferStatusIfPending(ctx, offerID, domain.TradeAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to transition offer: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: offer already resolved", domain.ErrStateConflict)
	}

	allIDs := make([]uuid.UUID, 0, len(offer.OfferedInstanceIDs)+len(surrenderedInstanceIDs))
	allIDs = append(allIDs, offer.OfferedInstanceIDs...)
	allIDs = append(allIDs, surrenderedInstanceIDs...)

	instances, err := tx.LockInstances(ctx, allIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.RewardInstance, len(instances))
	for _, inst := range instances {
		byID[inst.ID] = inst
	}

	// Ownership can change between proposal and response; re-validate
	// both sides against the locked rows.
	for _, id := range offer.OfferedInstanceIDs {
		if byID[id].OwnerUserID != offer.FromUserID {
			return nil, fmt.Errorf("%w: proposer no longer owns instance %s", domain.ErrNotOwned, id)
		}
	}
	for _, id := range surrenderedInstanceIDs {
		if byID[id].OwnerUserID != responderID {
			return nil, fmt.Errorf("%w: responder does not own instance %s", domain.ErrNotOwned, id)
		}
	}

	if err := validateCover(offer.RequestedDefinitionIDs, surrenderedInstanceIDs, byID); err != nil {
		return nil, err
	}

	for _, id := range offer.OfferedInstanceIDs {
		if err := tx.UpdateInstanceOwner(ctx, id, responderID); err != nil {
			return nil, fmt.Errorf("failed to transfer offered instance: %w", err)
		}
	}
	for _, id := range surrenderedInstanceIDs {
		if err := tx.UpdateInstanceOwner(ctx, id, offer.FromUserID); err != nil {
			return nil, fmt.Errorf("failed to transfer surrendered instance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	offer.Status = domain.TradeAccepted
	log.Info("Trade offer accepted", "offer_id", offer.ID, "from", offer.FromUserID, "to", offer.ToUserID)
	s.publish(ctx, event.TradeAccepted, offer, len(surrenderedInstanceIDs))

	return offer, nil
}

func (s *service) RejectTrade(ctx context.Context, offerID uuid.UUID, responderID string) (*domain.TradeOffer, error) {
	log := logger.FromContext(ctx)

	offer, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.ToUserID != responderID {
		return nil, fmt.Errorf("%w: only the offer recipient may respond", domain.ErrInvalidTarget)
	}
	if offer.Resolved() {
		return nil, fmt.Errorf("%w: offer already %s", domain.ErrStateConflict, offer.Status)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	rows, err := tx.UpdateOfferStatusIfPending(ctx, offerID, domain.TradeRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to transition offer: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: offer already resolved", domain.ErrStateConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rejection: %w", err)
	}

	offer.Status = domain.TradeRejected
	log.Info("Trade offer rejected", "offer_id", offer.ID, "by", responderID)
	s.publish(ctx, event.TradeRejected, offer, 0)

	return offer, nil
}

func (s *service) GetOffersForUser(ctx context.Context, userID string) ([]domain.TradeOffer, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetOffersForUser(ctx, userID, s.feedLimit)
}

func (s *service) GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.TradeOffer, error) {
	return s.repo.GetOffer(ctx, offerID)
}

func (s *service) publish(ctx context.Context, eventType event.Type, offer *domain.TradeOffer, acceptedCount int) {
	if s.eventBus == nil {
		return
	}
	evt := event.NewTradeEvent(eventType, offer.ID, offer.FromUserID, offer.ToUserID, len(offer.OfferedInstanceIDs), acceptedCount)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish trade event", "type", eventType, "error", err)
	}
}

// validateCover checks that the surrendered instances cover the requested
// definitions exactly: every requested definition satisfied, with no
// unrelated extras.
func validateCover(requested []uuid.UUID, surrendered []uuid.UUID, byID map[uuid.UUID]domain.RewardInstance) error {
	remaining := make(map[uuid.UUID]int, len(requested))
	for _, defID := range requested {
		remaining[defID]++
	}

	for _, id := range surrendered {
		defID := byID[id].DefinitionID
		if remaining[defID] == 0 {
			return fmt.Errorf("%w: instance %s does not match any requested reward", domain.ErrInvalidInput, id)
		}
		remaining[defID]--
	}

	for defID, count := range remaining {
		if count > 0 {
			return fmt.Errorf("%w: requested reward %s not satisfied", domain.ErrInvalidInput, defID)
		}
	}
	return nil
}

func hasDuplicates(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

func overlaps(a, b []uuid.UUID) bool {
	set := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if set[id] {
			return true
		}
	}
	return false
}
