package market

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

func (m *MockRepository) CreateListing(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockRepository) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockRepository) GetActiveListings(ctx context.Context, limit int) ([]domain.ListingView, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingView), args.Error(1)
}

func (m *MockRepository) GetInstanceByID(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardInstance), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.MarketTx), args.Error(1)
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

func (m *MockTx) UpdateListingStatusIfActive(ctx context.Context, listingID uuid.UUID, status domain.ListingStatus) (int64, error) {
	args := m.Called(ctx, listingID, status)
	return args.Get(0).(int64), args.Error(1)
}
