package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizdojo/reward-engine/internal/database"
	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// listingColumns is the canonical column list for marketplace_listings scans.
const listingColumns = "listing_id, seller_user_id, listed_instance_id, asking_description, status, created_at"

// MarketRepository implements repository.Market for PostgreSQL
type MarketRepository struct {
	*InventoryRepository
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) repository.Market {
	return &MarketRepository{
		InventoryRepository: NewInventoryRepository(db),
		db:                  db,
	}
}

// marketTx implements repository.MarketTx
type marketTx struct {
	inventoryTx
}

// BeginTx starts a new marketplace transaction
func (r *MarketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &marketTx{inventoryTx{tx: tx}}, nil
}

// CreateListing persists a listing in active status. The partial unique index
// on (listed_instance_id) WHERE status = 'active' enforces the one-active-
// listing-per-instance invariant; a violation maps to ErrStateConflict.
func (r *MarketRepository) CreateListing(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO marketplace_listings (listing_id, seller_user_id, listed_instance_id, asking_description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query, listing.ID, listing.SellerUserID, listing.ListedInstanceID,
		listing.AskingDescription, listing.Status, listing.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrCodeUniqueViolation {
			return fmt.Errorf("%w: instance already has an active listing", domain.ErrStateConflict)
		}
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetListing retrieves a listing by ID
func (r *MarketRepository) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM marketplace_listings WHERE listing_id = $1`, listingColumns)

	var l domain.Listing
	err := r.db.QueryRow(ctx, query, listingID).Scan(
		&l.ID, &l.SellerUserID, &l.ListedInstanceID, &l.AskingDescription, &l.Status, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &l, nil
}

// GetActiveListings lists active listings with reward and seller metadata,
// newest first
func (r *MarketRepository) GetActiveListings(ctx context.Context, limit int) ([]domain.ListingView, error) {
	if limit <= 0 {
		limit = DefaultListingFeedLimit
	}

	query := `
		SELECT l.listing_id, l.seller_user_id, l.listed_instance_id, l.asking_description, l.status, l.created_at,
		       d.reward_id, d.name, d.description, d.icon, d.rarity, d.reward_type, d.reward_value, d.created_at,
		       u.display_name
		FROM marketplace_listings l
		JOIN reward_instances i ON i.instance_id = l.listed_instance_id
		JOIN reward_definitions d ON d.reward_id = i.reward_definition_id
		JOIN users u ON u.user_id = l.seller_user_id
		WHERE l.status = $1
		ORDER BY l.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, domain.ListingActive, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query active listings: %w", err)
	}
	defer rows.Close()

	var views []domain.ListingView
	for rows.Next() {
		var v domain.ListingView
		if err := rows.Scan(
			&v.Listing.ID, &v.Listing.SellerUserID, &v.Listing.ListedInstanceID,
			&v.Listing.AskingDescription, &v.Listing.Status, &v.Listing.CreatedAt,
			&v.Definition.ID, &v.Definition.Name, &v.Definition.Description, &v.Definition.Icon,
			&v.Definition.Rarity, &v.Definition.RewardType, &v.Definition.RewardValue, &v.Definition.CreatedAt,
			&v.SellerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing view: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}
	return views, nil
}

// UpdateListingStatusIfActive performs the compare-and-swap transition out of
// active. A zero row count means another claim or a withdrawal got there
// first.
func (t *marketTx) UpdateListingStatusIfActive(ctx context.Context, listingID uuid.UUID, status domain.ListingStatus) (int64, error) {
	query := `UPDATE marketplace_listings SET status = $2 WHERE listing_id = $1 AND status = $3`

	tag, err := t.tx.Exec(ctx, query, listingID, status, domain.ListingActive)
	if err != nil {
		return 0, fmt.Errorf("failed to update listing status: %w", err)
	}
	return tag.RowsAffected(), nil
}
