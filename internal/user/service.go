package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// Service defines user identity and inventory read operations
type Service interface {
	// RegisterUser creates a new user record.
	RegisterUser(ctx context.Context, username, displayName string) (*domain.User, error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// Resolve maps a human-entered identifier to exactly one user.
	// Zero matches return domain.ErrUserNotFound; multiple matches return
	// domain.ErrAmbiguousRecipient. Ambiguity is surfaced, never resolved
	// silently.
	Resolve(ctx context.Context, identifier string) (*domain.User, error)

	// GetInventory lists the user's owned rewards with definitions, newest first.
	GetInventory(ctx context.Context, userID string) ([]domain.OwnedReward, error)

	// MarkRewardsSeen clears the unread flag on all of the user's rewards.
	MarkRewardsSeen(ctx context.Context, userID string) error
}

type service struct {
	repo      repository.User
	inventory repository.Inventory
	cache     *resolverCache
}

// NewService creates a new user service
func NewService(repo repository.User, inventory repository.Inventory) Service {
	return &service{
		repo:      repo,
		inventory: inventory,
		cache:     newResolverCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

func (s *service) RegisterUser(ctx context.Context, username, displayName string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}

	user := &domain.User{
		Username:    username,
		DisplayName: displayName,
	}
	if err := s.repo.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	// A new user can change what an identifier resolves to.
	s.cache.Clear()

	log.Info("User registered", "user_id", user.ID, "username", username)
	return user, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) Resolve(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", domain.ErrInvalidInput)
	}

	if cached, ok := s.cache.Get(identifier); ok {
		return cached, nil
	}

	matches, err := s.repo.FindUsersByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to look up identifier: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", domain.ErrUserNotFound, identifier)
	case 1:
		resolved := matches[0]
		s.cache.Set(identifier, &resolved)
		return &resolved, nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d users", domain.ErrAmbiguousRecipient, identifier, len(matches))
	}
}

func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.OwnedReward, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.inventory.GetOwnedRewards(ctx, userID)
}

func (s *service) MarkRewardsSeen(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return s.inventory.MarkRewardsSeen(ctx, userID)
}
