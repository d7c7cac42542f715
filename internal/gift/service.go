package gift

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

// IdentityResolver resolves a human-entered identifier to exactly one user.
// Zero matches surface as domain.ErrUserNotFound and multiple matches as
// domain.ErrAmbiguousRecipient; the resolver never picks one silently.
type IdentityResolver interface {
	Resolve(ctx context.Context, identifier string) (*domain.User, error)
}

// Service defines the gift transfer interface
type Service interface {
	// SendGift reassigns one owned instance from the sender to the resolved
	// recipient in a single atomic step. A completed gift is final.
	SendGift(ctx context.Context, senderID string, instanceID uuid.UUID, recipientIdentifier, message string) (*domain.Gift, error)
}

type service struct {
	repo     repository.Gift
	resolver IdentityResolver
	eventBus event.Bus
}

// NewService creates a new gift service
func NewService(repo repository.Gift, resolver IdentityResolver, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		eventBus: eventBus,
	}
}

func (s *service) SendGift(ctx context.Context, senderID string, instanceID uuid.UUID, recipientIdentifier, message string) (*domain.Gift, error) {
	log := logger.FromContext(ctx)

	if senderID == "" || recipientIdentifier == "" {
		return nil, fmt.Errorf("%w: sender and recipient are required", domain.ErrInvalidInput)
	}

	if _, err := s.repo.GetUserByID(ctx, senderID); err != nil {
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}

	recipient, err := s.resolver.Resolve(ctx, recipientIdentifier)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipient %q: %w", recipientIdentifier, err)
	}
	if recipient.ID == senderID {
		return nil, fmt.Errorf("%w: cannot gift to yourself", domain.ErrInvalidTarget)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	instance, err := tx.GetInstanceForUpdate(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.OwnerUserID != senderID {
		return nil, fmt.Errorf("%w: instance %s", domain.ErrNotOwned, instanceID)
	}

	if err := tx.UpdateInstanceOwner(ctx, instanceID, recipient.ID); err != nil {
		return nil, fmt.Errorf("failed to transfer instance: %w", err)
	}

	gift := &domain.Gift{
		ID:              uuid.New(),
		SenderUserID:    senderID,
		RecipientUserID: recipient.ID,
		InstanceID:      instanceID,
		Message:         message,
		SentAt:          time.Now().UTC(),
	}
	if err := tx.InsertGift(ctx, gift); err != nil {
		return nil, fmt.Errorf("failed to record gift: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit gift: %w", err)
	}

	log.Info("Gift sent", "gift_id", gift.ID, "sender", senderID, "recipient", recipient.ID)

	if s.eventBus != nil {
		evt := event.NewGiftSentEvent(gift.ID, senderID, recipient.ID, instanceID)
		if err := s.eventBus.Publish(ctx, evt); err != nil {
			log.Error("Failed to publish gift event", "error", err)
		}
	}

	return gift, nil
}
