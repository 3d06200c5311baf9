package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"plantdefender/internal/config"
	"plantdefender/internal/repository"
)

// Store bundles the repositories of the configured driver with its
// connection lifecycle.
type Store struct {
	Driver string
	Users  repository.UserRepository
	Scans  repository.ScanRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMemoryStore backs both repositories with process memory.
func NewMemoryStore(uniqueEmail bool) *Store {
	return &Store{
		Driver: config.StoreDriverMemory,
		Users:  repository.NewMemoryUserRepository(uniqueEmail),
		Scans:  repository.NewMemoryScanRepository(),
	}
}

func Open(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return NewMemoryStore(cfg.Store.UniqueEmail), nil

	case config.StoreDriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		if cfg.Store.UniqueEmail {
			if err := EnsurePostgresUniqueEmail(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Store{
			Driver: config.StoreDriverPostgres,
			Users:  repository.NewPostgresUserRepository(pool),
			Scans:  repository.NewPostgresScanRepository(pool),
			ping:   pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.StoreDriverMongo:
		client, err := NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := EnsureMongoIndexes(ctx, db, cfg.Store.UniqueEmail); err != nil {
			// Existing duplicate emails make the unique index fail; keep serving.
			log.Warn().Err(err).Msg("ensure mongo indexes failed")
		}
		return &Store{
			Driver: config.StoreDriverMongo,
			Users:  repository.NewMongoUserRepository(db),
			Scans:  repository.NewMongoScanRepository(db),
			ping: func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			},
			close: client.Disconnect,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
