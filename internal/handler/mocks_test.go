package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type MockGachaService struct {
	mock.Mock
}

func (m *MockGachaService) Roll(ctx context.Context, userID string, score, totalQuestions int) ([]domain.OwnedReward, error) {
	args := m.Called(ctx, userID, score, totalQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedReward), args.Error(1)
}

func (m *MockGachaService) GetCatalog(ctx context.Context) ([]domain.RewardDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardDefinition), args.Error(1)
}

type MockGiftService struct {
	mock.Mock
}

func (m *MockGiftService) SendGift(ctx context.Context, senderID string, instanceID uuid.UUID, recipientIdentifier, message string) (*domain.Gift, error) {
	args := m.Called(ctx, senderID, instanceID, recipientIdentifier, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gift), args.Error(1)
}

type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) ProposeTrade(ctx context.Context, fromUserID, toUserID string, offeredInstanceIDs, requestedDefinitionIDs []uuid.UUID, message string) (*domain.TradeOffer, error) {
	args := m.Called(ctx, fromUserID, toUserID, offeredInstanceIDs, requestedDefinitionIDs, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeOffer), args.Error(1)
}

func (m *MockTradeService) AcceptTrade(ctx context.Context, offerID uuid.UUID, responderID string, surrenderedInstanceIDs []uuid.UUID) (*domain.TradeOffer, error) {
	args := m.Called(ctx, offerID, responderID, surrenderedInstanceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeOffer), args.Error(1)
}

func (m *MockTradeService) RejectTrade(ctx context.Context, offerID uuid.UUID, responderID string) (*domain.TradeOffer, error) {
	args := m.Called(ctx, offerID, responderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeOffer), args.Error(1)
}

func (m *MockTradeService) GetOffersForUser(ctx context.Context, userID string) ([]domain.TradeOffer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeOffer), args.Error(1)
}

func (m *MockTradeService) GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.TradeOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeOffer), args.Error(1)
}

type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) ListItem(ctx context.Context, sellerID string, instanceID uuid.UUID, askingDescription string) (*domain.Listing, error) {
	args := m.Called(ctx, sellerID, instanceID, askingDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketService) ClaimListing(ctx context.Context, listingID uuid.UUID, claimantID string, offeredInstanceID uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, claimantID, offeredInstanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketService) WithdrawListing(ctx context.Context, listingID uuid.UUID, sellerID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockMarketService) GetActiveListings(ctx context.Context) ([]domain.ListingView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingView), args.Error(1)
}

func (m *MockMarketService) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, username, displayName string) (*domain.User, error) {
	args := m.Called(ctx, username, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Resolve(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetInventory(ctx context.Context, userID string) ([]domain.OwnedReward, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedReward), args.Error(1)
}

func (m *MockUserService) MarkRewardsSeen(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
