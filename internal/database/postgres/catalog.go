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

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) repository.Catalog {
	return &CatalogRepository{db: db}
}

// GetAllDefinitions retrieves every reward definition in the catalog
func (r *CatalogRepository) GetAllDefinitions(ctx context.Context) ([]domain.RewardDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_definitions ORDER BY rarity, name`, definitionColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reward definitions: %w", err)
	}
	defer rows.Close()

	return collectDefinitions(rows)
}

// GetDefinitionByID retrieves a single reward definition
func (r *CatalogRepository) GetDefinitionByID(ctx context.Context, id uuid.UUID) (*domain.RewardDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_definitions WHERE reward_id = $1`, definitionColumns)

	def, err := scanDefinition(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to get reward definition: %w", err)
	}
	return def, nil
}

// GetDefinitionsByRarity retrieves all definitions of one rarity tier
func (r *CatalogRepository) GetDefinitionsByRarity(ctx context.Context, tier domain.RarityTier) ([]domain.RewardDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_definitions WHERE rarity = $1 ORDER BY name`, definitionColumns)

	rows, err := r.db.Query(ctx, query, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to query definitions by rarity: %w", err)
	}
	defer rows.Close()

	return collectDefinitions(rows)
}

// InsertDefinition inserts a new catalog entry (seeding and tests only)
func (r *CatalogRepository) InsertDefinition(ctx context.Context, def *domain.RewardDefinition) error {
	query := `
		INSERT INTO reward_definitions (reward_id, name, description, icon, rarity, reward_type, reward_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query, def.ID, def.Name, def.Description, def.Icon,
		def.Rarity, def.RewardType, def.RewardValue)
	if err != nil {
		return fmt.Errorf("failed to insert reward definition: %w", err)
	}
	return nil
}

func collectDefinitions(rows pgx.Rows) ([]domain.RewardDefinition, error) {
	var defs []domain.RewardDefinition
	for rows.Next() {
		var def domain.RewardDefinition
		if err := rows.Scan(&def.ID, &def.Name, &def.Description, &def.Icon, &def.Rarity,
			&def.RewardType, &def.RewardValue, &def.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reward definition: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reward definitions: %w", err)
	}
	return defs, nil
}
