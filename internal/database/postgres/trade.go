package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizdojo/reward-engine/internal/database"
	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// offerColumns is the canonical column list for trade_offers scans.
const offerColumns = "offer_id, from_user_id, to_user_id, offered_instance_ids, requested_definition_ids, message, status, created_at"

// TradeRepository implements repository.Trade for PostgreSQL
type TradeRepository struct {
	*UserRepository
	*InventoryRepository
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) repository.Trade {
	return &TradeRepository{
		UserRepository:      NewUserRepository(db),
		InventoryRepository: NewInventoryRepository(db),
		db:                  db,
	}
}

// tradeTx implements repository.TradeTx
type tradeTx struct {
	inventoryTx
}

// BeginTx starts a new trade transaction
func (r *TradeRepository) BeginTx(ctx context.Context) (repository.TradeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &tradeTx{inventoryTx{tx: tx}}, nil
}

// CreateOffer persists a new offer in pending status
func (r *TradeRepository) CreateOffer(ctx context.Context, offer *domain.TradeOffer) error {
	query := `
		INSERT INTO trade_offers (offer_id, from_user_id, to_user_id, offered_instance_ids, requested_definition_ids, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query, offer.ID, offer.FromUserID, offer.ToUserID,
		offer.OfferedInstanceIDs, offer.RequestedDefinitionIDs, offer.Message, offer.Status, offer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trade offer: %w", err)
	}
	return nil
}

// GetOffer retrieves an offer by ID
func (r *TradeRepository) GetOffer(ctx context.Context, offerID uuid.UUID) (*domain.TradeOffer, error) {
	query := fmt.Sprintf(`SELECT %s FROM trade_offers WHERE offer_id = $1`, offerColumns)

	offer, err := scanOffer(r.db.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get trade offer: %w", err)
	}
	return offer, nil
}

// GetOffersForUser lists offers where the user is either party, newest first
func (r *TradeRepository) GetOffersForUser(ctx context.Context, userID string, limit int) ([]domain.TradeOffer, error) {
	if limit <= 0 {
		limit = DefaultOfferFeedLimit
	}

	query := fmt.Sprintf(`
		SELECT %s FROM trade_offers
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, offerColumns)

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.TradeOffer
	for rows.Next() {
		var o domain.TradeOffer
		if err := rows.Scan(&o.ID, &o.FromUserID, &o.ToUserID, &o.OfferedInstanceIDs,
			&o.RequestedDefinitionIDs, &o.Message, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trade offers: %w", err)
	}
	return offers, nil
}

// UpdateOfferStatusIfPending performs the compare-and-swap transition out of
// pending. A zero row count means the offer was already resolved.
func (t *tradeTx) UpdateOfferStatusIfPending(ctx context.Context, offerID uuid.UUID, status domain.TradeStatus) (int64, error) {
	query := `UPDATE trade_offers SET status = $2 WHERE offer_id = $1 AND status = $3`

	tag, err := t.tx.Exec(ctx, query, offerID, status, domain.TradePending)
	if err != nil {
		return 0, fmt.Errorf("failed to update offer status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanOffer(row pgx.Row) (*domain.TradeOffer, error) {
	var o domain.TradeOffer
	err := row.Scan(&o.ID, &o.FromUserID, &o.ToUserID, &o.OfferedInstanceIDs,
		&o.RequestedDefinitionIDs, &o.Message, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
