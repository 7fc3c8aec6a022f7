package factory

import (
	"context"
	"fmt"

	"packmates/internal/adapters/locker/local"
	"packmates/internal/adapters/locker/redislock"
	"packmates/internal/adapters/storage/memory"
	mongostore "packmates/internal/adapters/storage/mongo"
	"packmates/internal/adapters/storage/postgres"
	"packmates/internal/config"
	"packmates/internal/domain/calendar"
	"packmates/internal/domain/pets"
	"packmates/internal/platform/logger"
	"packmates/internal/ports/locker"

	"github.com/redis/go-redis/v9"
)

// Stores agrupa los repositorios del backend elegido.
type Stores struct {
	Calendar calendar.Repository
	Pets     pets.Repository

	// Close libera conexiones. Nunca es nil.
	Close func(ctx context.Context) error
}

// NewStores abre el backend configurado en cfg.DBDriver.
// Con migrate=true aplica schema (postgres) o índices (mongo) antes de devolver.
func NewStores(ctx context.Context, cfg *config.Config, migrate bool, log logger.Logger) (Stores, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return Stores{}, fmt.Errorf("postgres open: %w", err)
		}
		if migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return Stores{}, fmt.Errorf("postgres migrate: %w", err)
			}
		}
		log.Info("storage ready", map[string]any{"driver": cfg.DBDriver})
		return Stores{
			Calendar: postgres.NewCalendarRepo(db),
			Pets:     postgres.NewPetsRepo(db),
			Close:    func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Open(ctx, cfg.MongoURI)
		if err != nil {
			return Stores{}, fmt.Errorf("mongo open: %w", err)
		}
		db := client.Database(cfg.MongoDatabase)
		if migrate {
			if err := mongostore.EnsureIndexes(ctx, db); err != nil {
				_ = client.Disconnect(ctx)
				return Stores{}, fmt.Errorf("mongo indexes: %w", err)
			}
		}
		log.Info("storage ready", map[string]any{"driver": cfg.DBDriver, "database": cfg.MongoDatabase})
		return Stores{
			Calendar: mongostore.NewCalendarRepo(db),
			Pets:     mongostore.NewPetsRepo(db),
			Close:    client.Disconnect,
		}, nil

	default:
		log.Info("storage ready", map[string]any{"driver": config.DriverMemory})
		return Stores{
			Calendar: memory.NewCalendarRepo(),
			Pets:     memory.NewPetRepo(),
			Close:    func(context.Context) error { return nil },
		}, nil
	}
}

// NewLocker devuelve un lock distribuido si hay Redis configurado; si no, uno local.
func NewLocker(cfg *config.Config) (locker.Locker, func() error) {
	if cfg.RedisAddr == "" {
		return local.New(), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	return redislock.New(client, redislock.Options{TTL: cfg.LockTTL}), client.Close
}
