package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizdojo/reward-engine/internal/database/postgres"
	"github.com/quizdojo/reward-engine/internal/eventlog"
	"github.com/quizdojo/reward-engine/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Catalog   repository.Catalog
	Inventory repository.Inventory
	Gacha     repository.Gacha
	Gift      repository.Gift
	Trade     repository.Trade
	Market    repository.Market
	User      repository.User
	EventLog  eventlog.Repository
}

// InitializeRepositories creates all repository implementations.
// The inventory repository doubles as the gacha repository since rolling
// is just catalog reads plus instance inserts.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	inventory := postgres.NewInventoryRepository(dbPool)

	return &Repositories{
		Catalog:   postgres.NewCatalogRepository(dbPool),
		Inventory: inventory,
		Gacha:     inventory,
		Gift:      postgres.NewGiftRepository(dbPool),
		Trade:     postgres.NewTradeRepository(dbPool),
		Market:    postgres.NewMarketRepository(dbPool),
		User:      postgres.NewUserRepository(dbPool),
		EventLog:  postgres.NewEventLogRepository(dbPool),
	}
}
