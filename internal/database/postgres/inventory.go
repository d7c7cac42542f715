package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// InventoryRepository implements repository.Inventory and repository.Gacha
// for PostgreSQL.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

var _ repository.Inventory = (*InventoryRepository)(nil)
var _ repository.Gacha = (*InventoryRepository)(nil)

// GetAllDefinitions retrieves the full catalog for the gacha allocator
func (r *InventoryRepository) GetAllDefinitions(ctx context.Context) ([]domain.RewardDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_definitions`, definitionColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reward definitions: %w", err)
	}
	defer rows.Close()

	return collectDefinitions(rows)
}

// InsertInstance persists one newly created reward instance
func (r *InventoryRepository) InsertInstance(ctx context.Context, instance *domain.RewardInstance) error {
	query := `
		INSERT INTO reward_instances (instance_id, owner_user_id, reward_definition_id, acquired_at, is_new)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, instance.ID, instance.OwnerUserID,
		instance.DefinitionID, instance.AcquiredAt, instance.IsNew)
	if err != nil {
		return fmt.Errorf("failed to insert reward instance: %w", err)
	}
	return nil
}

// GetInstanceByID retrieves a single instance
func (r *InventoryRepository) GetInstanceByID(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_instances WHERE instance_id = $1`, instanceColumns)

	inst, err := scanInstance(r.db.QueryRow(ctx, query, instanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get reward instance: %w", err)
	}
	return inst, nil
}

// GetInstancesByOwner lists a user's instances, newest first
func (r *InventoryRepository) GetInstancesByOwner(ctx context.Context, ownerUserID string) ([]domain.RewardInstance, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_instances WHERE owner_user_id = $1 ORDER BY acquired_at DESC`, instanceColumns)

	rows, err := r.db.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query instances by owner: %w", err)
	}
	defer rows.Close()

	var instances []domain.RewardInstance
	for rows.Next() {
		var inst domain.RewardInstance
		if err := rows.Scan(&inst.ID, &inst.OwnerUserID, &inst.DefinitionID, &inst.AcquiredAt, &inst.IsNew); err != nil {
			return nil, fmt.Errorf("failed to scan instance: %w", err)
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read instances: %w", err)
	}
	return instances, nil
}

// GetOwnedRewards lists a user's instances joined with their definitions
func (r *InventoryRepository) GetOwnedRewards(ctx context.Context, ownerUserID string) ([]domain.OwnedReward, error) {
	query := `
		SELECT i.instance_id, i.owner_user_id, i.reward_definition_id, i.acquired_at, i.is_new,
		       d.reward_id, d.name, d.description, d.icon, d.rarity, d.reward_type, d.reward_value, d.created_at
		FROM reward_instances i
		JOIN reward_definitions d ON d.reward_id = i.reward_definition_id
		WHERE i.owner_user_id = $1
		ORDER BY i.acquired_at DESC
	`

	rows, err := r.db.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query owned rewards: %w", err)
	}
	defer rows.Close()

	var owned []domain.OwnedReward
	for rows.Next() {
		var o domain.OwnedReward
		if err := rows.Scan(
			&o.Instance.ID, &o.Instance.OwnerUserID, &o.Instance.DefinitionID, &o.Instance.AcquiredAt, &o.Instance.IsNew,
			&o.Definition.ID, &o.Definition.Name, &o.Definition.Description, &o.Definition.Icon, &o.Definition.Rarity,
			&o.Definition.RewardType, &o.Definition.RewardValue, &o.Definition.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan owned reward: %w", err)
		}
		owned = append(owned, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read owned rewards: %w", err)
	}
	return owned, nil
}

// MarkRewardsSeen clears the unread flag on all of a user's instances
func (r *InventoryRepository) MarkRewardsSeen(ctx context.Context, ownerUserID string) error {
	query := `UPDATE reward_instances SET is_new = FALSE WHERE owner_user_id = $1 AND is_new`

	if _, err := r.db.Exec(ctx, query, ownerUserID); err != nil {
		return fmt.Errorf("failed to mark rewards seen: %w", err)
	}
	return nil
}
