package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindUsersByIdentifier(ctx context.Context, identifier string) ([]domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockInventory
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) InsertInstance(ctx context.Context, instance *domain.RewardInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockInventory) GetInstanceByID(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardInstance), args.Error(1)
}

func (m *MockInventory) GetInstancesByOwner(ctx context.Context, ownerUserID string) ([]domain.RewardInstance, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardInstance), args.Error(1)
}

func (m *MockInventory) GetOwnedRewards(ctx context.Context, ownerUserID string) ([]domain.OwnedReward, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedReward), args.Error(1)
}

func (m *MockInventory) MarkRewardsSeen(ctx context.Context, ownerUserID string) error {
	args := m.Called(ctx, ownerUserID)
	return args.Error(0)
}
