package gacha

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/event"
	"github.com/quizdojo/reward-engine/internal/logger"
	"github.com/quizdojo/reward-engine/internal/repository"
	"github.com/quizdojo/reward-engine/internal/utils"
)

// rarityWeight pairs a tier with its draw weight. Tables are walked in
// order, so the slice order is the tie-break order of the draw.
type rarityWeight struct {
	tier   domain.RarityTier
	weight float64
}

// Weight tables by score band. Tables need not sum to 100; the draw
// normalizes against the cumulative sum.
var (
	defaultWeights = []rarityWeight{
		{domain.RarityCommon, 60},
		{domain.RarityRare, 25},
		{domain.RarityEpic, 10},
		{domain.RarityLegendary, 5},
	}

	midWeights = []rarityWeight{
		{domain.RarityCommon, 40},
		{domain.RarityRare, 35},
		{domain.RarityEpic, 20},
		{domain.RarityLegendary, 5},
	}

	highWeights = []rarityWeight{
		{domain.RarityCommon, 30},
		{domain.RarityRare, 35},
		{domain.RarityEpic, 25},
		{domain.RarityLegendary, 10},
	}
)

// Service defines the reward allocation interface
type Service interface {
	// Roll converts a quiz completion into zero or more newly owned
	// reward instances.
	Roll(ctx context.Context, userID string, score, totalQuestions int) ([]domain.OwnedReward, error)

	// GetCatalog returns every reward definition for the public catalog
	// browse surface.
	GetCatalog(ctx context.Context) ([]domain.RewardDefinition, error)
}

type service struct {
	repo     repository.Gacha
	catalog  repository.Catalog
	eventBus event.Bus
	rnd      func() float64 // For RNG
}

// NewService creates a new gacha service
func NewService(repo repository.Gacha, catalog repository.Catalog, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		eventBus: eventBus,
		rnd:      utils.RandomFloat,
	}
}

// Roll performs the weighted draws for one quiz completion and persists
// each created instance individually. Instances already persisted are
// never rolled back when a later insert fails.
func (s *service) Roll(ctx context.Context, userID string, score, totalQuestions int) ([]domain.OwnedReward, error) {
	log := logger.FromContext(ctx)

	if totalQuestions <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidTotal)
	}
	if score < 0 || score > totalQuestions {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidScore)
	}

	percentage := float64(score) / float64(totalQuestions) * 100
	rolls := rollCount(score, totalQuestions, percentage)
	weights := weightsFor(percentage)

	definitions, err := s.repo.GetAllDefinitions(ctx)
	if err != nil {
		log.Warn("Reward catalog unavailable, skipping drops", "user_id", userID, "error", err)
		return nil, nil // Empty result, not an error
	}
	if len(definitions) == 0 {
		log.Warn("Reward catalog empty, skipping drops", "user_id", userID)
		return nil, nil
	}

	byTier := make(map[domain.RarityTier][]domain.RewardDefinition)
	for _, def := range definitions {
		byTier[def.Rarity] = append(byTier[def.Rarity], def)
	}

	var rewards []domain.OwnedReward
	for i := 0; i < rolls; i++ {
		tier, ok := drawTier(weights, s.rnd())
		if !ok {
			continue
		}

		pool := byTier[tier]
		if len(pool) == 0 {
			// No eligible definitions for this tier; the roll yields
			// nothing rather than falling back to another tier.
			log.Debug("No definitions for drawn tier", "tier", tier)
			continue
		}

		def := pool[pickIndex(s.rnd(), len(pool))]
		instance := &domain.RewardInstance{
			ID:           uuid.New(),
			OwnerUserID:  userID,
			DefinitionID: def.ID,
			AcquiredAt:   time.Now().UTC(),
			IsNew:        true,
		}

		if err := s.repo.InsertInstance(ctx, instance); err != nil {
			log.Error("Failed to persist dropped reward", "definition", def.Name, "error", err)
			continue
		}

		rewards = append(rewards, domain.OwnedReward{Instance: *instance, Definition: def})
	}

	s.publishDrop(ctx, userID, score, totalQuestions, percentage, rolls, rewards)

	return rewards, nil
}

// GetCatalog exposes the reward definitions to browse surfaces. Unlike a
// roll, a catalog read has nothing to degrade to, so a storage failure
// surfaces as a catalog-unavailable error.
func (s *service) GetCatalog(ctx context.Context) ([]domain.RewardDefinition, error) {
	defs, err := s.catalog.GetAllDefinitions(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to load reward catalog", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return defs, nil
}

func (s *service) publishDrop(ctx context.Context, userID string, score, total int, percentage float64, rolls int, rewards []domain.OwnedReward) {
	if s.eventBus == nil || len(rewards) == 0 {
		return
	}

	dropped := make([]event.DroppedRewardV1, 0, len(rewards))
	for _, r := range rewards {
		dropped = append(dropped, event.DroppedRewardV1{
			InstanceID:   r.Instance.ID.String(),
			DefinitionID: r.Definition.ID.String(),
			Name:         r.Definition.Name,
			Rarity:       string(r.Definition.Rarity),
		})
	}

	evt := event.NewRewardDroppedEvent(userID, score, total, percentage, rolls, dropped)
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error("Failed to publish reward drop event", "error", err)
	}
}

// rollCount maps a score to its number of draws. The fourth roll gates
// on an exactly perfect score so rounding can never grant it.
func rollCount(score, total int, percentage float64) int {
	switch {
	case score == total:
		return PerfectRollCount
	case percentage >= TripleRollThreshold:
		return 3
	case percentage >= DoubleRollThreshold:
		return 2
	default:
		return BaseRollCount
	}
}

// weightsFor selects the weight table for a score percentage.
func weightsFor(percentage float64) []rarityWeight {
	switch {
	case percentage >= HighTableThreshold:
		return highWeights
	case percentage >= MidTableThreshold:
		return midWeights
	default:
		return defaultWeights
	}
}

// drawTier walks the table in order against a cumulative sum and returns
// the first tier whose band contains the draw.
func drawTier(weights []rarityWeight, roll float64) (domain.RarityTier, bool) {
	var total float64
	for _, w := range weights {
		total += w.weight
	}
	if total <= 0 {
		return "", false
	}

	target := roll * total
	var cumulative float64
	for _, w := range weights {
		cumulative += w.weight
		if target < cumulative {
			return w.tier, true
		}
	}

	// Floating point edge at the top of the distribution.
	return weights[len(weights)-1].tier, true
}

// pickIndex converts a [0,1) draw into a slice index.
func pickIndex(roll float64, length int) int {
	idx := int(roll * float64(length))
	if idx >= length {
		idx = length - 1
	}
	return idx
}
