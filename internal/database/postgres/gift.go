package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizdojo/reward-engine/internal/database"
	"github.com/quizdojo/reward-engine/internal/domain"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// GiftRepository implements repository.Gift for PostgreSQL
type GiftRepository struct {
	*UserRepository
	db *pgxpool.Pool
}

// NewGiftRepository creates a new GiftRepository
func NewGiftRepository(db *pgxpool.Pool) repository.Gift {
	return &GiftRepository{
		UserRepository: NewUserRepository(db),
		db:             db,
	}
}

// giftTx implements repository.GiftTx
type giftTx struct {
	inventoryTx
}

// BeginTx starts a new gift transaction
func (r *GiftRepository) BeginTx(ctx context.Context) (repository.GiftTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &giftTx{inventoryTx{tx: tx}}, nil
}

// InsertGift writes the audit record of a completed gift
func (t *giftTx) InsertGift(ctx context.Context, gift *domain.Gift) error {
	query := `
		INSERT INTO gifts (gift_id, sender_user_id, recipient_user_id, instance_id, message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if gift.ID == uuid.Nil {
		gift.ID = uuid.New()
	}

	_, err := t.tx.Exec(ctx, query, gift.ID, gift.SenderUserID, gift.RecipientUserID,
		gift.InstanceID, gift.Message, gift.SentAt)
	if err != nil {
		return fmt.Errorf("failed to insert gift record: %w", err)
	}
	return nil
}
