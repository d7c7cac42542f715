package gacha

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/event"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAllDefinitions(ctx context.Context) ([]domain.RewardDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardDefinition), args.Error(1)
}

func (m *MockRepository) InsertInstance(ctx context.Context, instance *domain.RewardInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockRepository) GetDefinitionByID(ctx context.Context, id uuid.UUID) (*domain.RewardDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardDefinition), args.Error(1)
}

func (m *MockRepository) GetDefinitionsByRarity(ctx context.Context, tier domain.RarityTier) ([]domain.RewardDefinition, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RewardDefinition), args.Error(1)
}

func (m *MockRepository) InsertDefinition(ctx context.Context, def *domain.RewardDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

// sequenceRnd returns the given values in order, then repeats the last one.
func sequenceRnd(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func testCatalog() []domain.RewardDefinition {
	defs := make([]domain.RewardDefinition, 0, len(domain.AllRarityTiers))
	for _, tier := range domain.AllRarityTiers {
		defs = append(defs, domain.RewardDefinition{
			ID:     uuid.New(),
			Name:   "test " + string(tier),
			Rarity: tier,
		})
	}
	return defs
}

func TestRollCount(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  int
	}{
		{name: "low score", score: 5, total: 10, want: 1},
		{name: "just below double threshold", score: 79, total: 100, want: 1},
		{name: "at double threshold", score: 80, total: 100, want: 2},
		{name: "just below triple threshold", score: 94, total: 100, want: 2},
		{name: "at triple threshold", score: 95, total: 100, want: 3},
		{name: "near perfect", score: 99, total: 100, want: 3},
		{name: "perfect", score: 100, total: 100, want: 4},
		{name: "perfect small quiz", score: 10, total: 10, want: 4},
		{name: "99.9 percent is not perfect", score: 999, total: 1000, want: 3},
		{name: "zero score", score: 0, total: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentage := float64(tt.score) / float64(tt.total) * 100
			assert.Equal(t, tt.want, rollCount(tt.score, tt.total, percentage))
		})
	}
}

func TestWeightsFor(t *testing.T) {
	assert.Equal(t, defaultWeights, weightsFor(0))
	assert.Equal(t, defaultWeights, weightsFor(79.9))
	assert.Equal(t, midWeights, weightsFor(80))
	assert.Equal(t, midWeights, weightsFor(89.9))
	assert.Equal(t, highWeights, weightsFor(90))
	assert.Equal(t, highWeights, weightsFor(100))
}

func TestDrawTier(t *testing.T) {
	// defaultWeights sums to 100: bands are [0,60) common, [60,85) rare,
	// [85,95) epic, [95,100) legendary.
	tests := []struct {
		name string
		roll float64
		want domain.RarityTier
	}{
		{name: "bottom of common band", roll: 0.0, want: domain.RarityCommon},
		{name: "top of common band", roll: 0.599, want: domain.RarityCommon},
		{name: "bottom of rare band", roll: 0.6, want: domain.RarityRare},
		{name: "top of rare band", roll: 0.849, want: domain.RarityRare},
		{name: "bottom of epic band", roll: 0.85, want: domain.RarityEpic},
		{name: "bottom of legendary band", roll: 0.95, want: domain.RarityLegendary},
		{name: "top of distribution", roll: 0.999, want: domain.RarityLegendary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := drawTier(defaultWeights, tt.roll)
			require.True(t, ok)
			assert.Equal(t, tt.want, tier)
		})
	}
}

func TestDrawTier_NormalizesAgainstCumulativeSum(t *testing.T) {
	// Table sums to 50, so a 0.5 draw lands at cumulative 25, inside
	// the second band.
	weights := []rarityWeight{
		{domain.RarityCommon, 20},
		{domain.RarityRare, 30},
	}

	tier, ok := drawTier(weights, 0.5)
	require.True(t, ok)
	assert.Equal(t, domain.RarityRare, tier)

	tier, ok = drawTier(weights, 0.39)
	require.True(t, ok)
	assert.Equal(t, domain.RarityCommon, tier)
}

func TestDrawTier_ZeroTotal(t *testing.T) {
	_, ok := drawTier(nil, 0.5)
	assert.False(t, ok)

	_, ok = drawTier([]rarityWeight{{domain.RarityCommon, 0}}, 0.5)
	assert.False(t, ok)
}

func TestRoll_InvalidInput(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockRepository), nil)

	tests := []struct {
		name  string
		score int
		total int
	}{
		{name: "zero total", score: 0, total: 0},
		{name: "negative total", score: 0, total: -1},
		{name: "negative score", score: -1, total: 10},
		{name: "score above total", score: 11, total: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Roll(context.Background(), "user-1", tt.score, tt.total)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRoll_PerfectScoreCreatesFourInstances(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(testCatalog(), nil)
	repo.On("InsertInstance", mock.Anything, mock.AnythingOfType("*domain.RewardInstance")).Return(nil)

	svc := &service{repo: repo, rnd: sequenceRnd(0.0)}

	rewards, err := svc.Roll(context.Background(), "user-1", 10, 10)
	require.NoError(t, err)
	require.Len(t, rewards, 4)

	for _, r := range rewards {
		assert.Equal(t, "user-1", r.Instance.OwnerUserID)
		assert.True(t, r.Instance.IsNew)
		assert.Equal(t, r.Definition.ID, r.Instance.DefinitionID)
	}
	repo.AssertNumberOfCalls(t, "InsertInstance", 4)
}

func TestRoll_DeterministicDraws(t *testing.T) {
	catalog := testCatalog()
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(catalog, nil)
	repo.On("InsertInstance", mock.Anything, mock.Anything).Return(nil)

	// 100% uses the high table: bands are [0,30) common, [30,65) rare,
	// [65,90) epic, [90,100) legendary. Alternating tier draw and
	// definition pick per roll.
	svc := &service{repo: repo, rnd: sequenceRnd(
		0.1, 0.0, // common
		0.5, 0.0, // rare
		0.7, 0.0, // epic
		0.95, 0.0, // legendary
	)}

	rewards, err := svc.Roll(context.Background(), "user-1", 10, 10)
	require.NoError(t, err)
	require.Len(t, rewards, 4)

	assert.Equal(t, domain.RarityCommon, rewards[0].Definition.Rarity)
	assert.Equal(t, domain.RarityRare, rewards[1].Definition.Rarity)
	assert.Equal(t, domain.RarityEpic, rewards[2].Definition.Rarity)
	assert.Equal(t, domain.RarityLegendary, rewards[3].Definition.Rarity)
}

func TestRoll_CatalogUnavailableIsNotAnError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewService(repo, repo, nil)

	rewards, err := svc.Roll(context.Background(), "user-1", 10, 10)
	assert.NoError(t, err)
	assert.Empty(t, rewards)
	repo.AssertNotCalled(t, "InsertInstance", mock.Anything, mock.Anything)
}

func TestRoll_EmptyCatalog(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return([]domain.RewardDefinition{}, nil)

	svc := NewService(repo, repo, nil)

	rewards, err := svc.Roll(context.Background(), "user-1", 5, 10)
	assert.NoError(t, err)
	assert.Empty(t, rewards)
}

func TestRoll_EmptyTierYieldsNothing(t *testing.T) {
	// Catalog holds only legendary definitions; a common draw must not
	// fall back to them.
	catalog := []domain.RewardDefinition{
		{ID: uuid.New(), Name: "test legendary", Rarity: domain.RarityLegendary},
	}
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(catalog, nil)

	svc := &service{repo: repo, rnd: sequenceRnd(0.0)}

	rewards, err := svc.Roll(context.Background(), "user-1", 5, 10)
	assert.NoError(t, err)
	assert.Empty(t, rewards)
	repo.AssertNotCalled(t, "InsertInstance", mock.Anything, mock.Anything)
}

func TestRoll_PartialPersistence(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(testCatalog(), nil)
	repo.On("InsertInstance", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("InsertInstance", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()
	repo.On("InsertInstance", mock.Anything, mock.Anything).Return(nil)

	svc := &service{repo: repo, rnd: sequenceRnd(0.0)}

	rewards, err := svc.Roll(context.Background(), "user-1", 10, 10)
	require.NoError(t, err)
	assert.Len(t, rewards, 3)
	repo.AssertNumberOfCalls(t, "InsertInstance", 4)
}

func TestRoll_PublishesDropEvent(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(testCatalog(), nil)
	repo.On("InsertInstance", mock.Anything, mock.Anything).Return(nil)

	bus := event.NewMemoryBus()
	var published []event.Event
	bus.Subscribe(event.RewardDropped, func(_ context.Context, evt event.Event) error {
		published = append(published, evt)
		return nil
	})

	svc := &service{repo: repo, eventBus: bus, rnd: sequenceRnd(0.0)}

	rewards, err := svc.Roll(context.Background(), "user-1", 10, 10)
	require.NoError(t, err)
	require.Len(t, rewards, 4)
	require.Len(t, published, 1)

	payload, ok := published[0].Payload.(event.RewardDroppedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, 4, payload.Rolls)
	assert.Len(t, payload.Rewards, 4)
}

func TestGetCatalog(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(testCatalog(), nil)

	svc := NewService(repo, repo, nil)

	defs, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, defs, len(domain.AllRarityTiers))
}

func TestGetCatalog_StorageFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAllDefinitions", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewService(repo, repo, nil)

	_, err := svc.GetCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
