package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quizdojo/reward-engine/internal/domain"
)

// instanceColumns is the canonical column list for reward_instances scans.
const instanceColumns = "instance_id, owner_user_id, reward_definition_id, acquired_at, is_new"

// definitionColumns is the canonical column list for reward_definitions scans.
const definitionColumns = "reward_id, name, description, icon, rarity, reward_type, reward_value, created_at"

func scanInstance(row pgx.Row) (*domain.RewardInstance, error) {
	var inst domain.RewardInstance
	err := row.Scan(&inst.ID, &inst.OwnerUserID, &inst.DefinitionID, &inst.AcquiredAt, &inst.IsNew)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func scanDefinition(row pgx.Row) (*domain.RewardDefinition, error) {
	var def domain.RewardDefinition
	err := row.Scan(&def.ID, &def.Name, &def.Description, &def.Icon, &def.Rarity,
		&def.RewardType, &def.RewardValue, &def.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// inventoryTx implements repository.InventoryTx on top of a pgx transaction.
// The concrete gift/trade/market transaction types embed it so that every
// ownership mutation in the system goes through the same locked reads and
// reassignment statement.
type inventoryTx struct {
	tx pgx.Tx
}

func (t *inventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *inventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetInstanceForUpdate reads and row-locks a single instance.
func (t *inventoryTx) GetInstanceForUpdate(ctx context.Context, instanceID uuid.UUID) (*domain.RewardInstance, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_instances WHERE instance_id = $1 FOR UPDATE`, instanceColumns)

	inst, err := scanInstance(t.tx.QueryRow(ctx, query, instanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to lock instance: %w", err)
	}
	return inst, nil
}

// LockInstances row-locks the given instances. The ORDER BY keeps the lock
// acquisition order deterministic across concurrent transactions so two
// swaps touching the same instances cannot deadlock.
func (t *inventoryTx) LockInstances(ctx context.Context, instanceIDs []uuid.UUID) ([]domain.RewardInstance, error) {
	if len(instanceIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM reward_instances WHERE instance_id = ANY($1) ORDER BY instance_id FOR UPDATE`, instanceColumns)

	rows, err := t.tx.Query(ctx, query, instanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock instances: %w", err)
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

	if len(instances) != len(uniqueIDs(instanceIDs)) {
		return nil, fmt.Errorf("%w: expected %d instances, found %d",
			domain.ErrInstanceNotFound, len(uniqueIDs(instanceIDs)), len(instances))
	}

	return instances, nil
}

// UpdateInstanceOwner reassigns ownership of one instance. The unread flag is
// reset so the new owner sees the reward highlighted.
func (t *inventoryTx) UpdateInstanceOwner(ctx context.Context, instanceID uuid.UUID, ownerUserID string) error {
	query := `UPDATE reward_instances SET owner_user_id = $2, is_new = TRUE WHERE instance_id = $1`

	tag, err := t.tx.Exec(ctx, query, instanceID, ownerUserID)
	if err != nil {
		return fmt.Errorf("failed to update instance owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
