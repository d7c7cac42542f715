package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOffer(ctx context.Context, offer *domain.TradeOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockRepository) GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.TradeOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeOffer), args.Error(1)
}

func (m *MockRepository) GetOffersForUser(ctx context.Context, userID string, limit int) ([]domain.TradeOffer, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeOffer), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetInstancesByOwner(ctx context.Context, ownerUserID string) ([]domain.RewardInstance, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardInstance), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.TradeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.TradeTx), args.Error(1)
}

// MockTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetInstanceForUpdate(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardInstance), args.Error(1)
}

func (m *MockTx) LockInstances(ctx context.Context, instanceIDs []uuid.UUID) ([]domain.RewardInstance, error) {
	args := m.Called(ctx, instanceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardInstance), args.Error(1)
}

func (m *MockTx) UpdateInstanceOwner(ctx context.Context, instanceID uuid.UUID, ownerUserID string) error {
	args := m.Called(ctx, instanceID, ownerUserID)
	return args.Error(0)
}

func (m *MockTx) UpdateOfferStatusIfPending(ctx context.Context, offerID uuid.UUID, status domain.TradeStatus) (int64, error) {
	args := m.Called(ctx, offerID, status)
	return args.Get(0).(int64), args.Error(1)
}
