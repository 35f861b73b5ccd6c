// Package app wires configuration, storage and the two stores together.
// The host application constructs exactly one App at startup and calls
// Init once before any screen touches the stores; this replaces the old
// load-on-mount behavior and the ambient global comment state.
package app

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pinwall/pinwall-core/internal/config"
	"github.com/pinwall/pinwall-core/internal/repository"
	"github.com/pinwall/pinwall-core/internal/service"
	"github.com/pinwall/pinwall-core/pkg/kv"
	pkglogger "github.com/pinwall/pinwall-core/pkg/logger"
	pkgredis "github.com/pinwall/pinwall-core/pkg/redis"
)

// App is the composition root holding the store instances
type App struct {
	Config   *config.Config
	Notes    service.NoteService
	Comments service.CommentRegistry
}

// New builds the blob store selected by configuration and the services on
// top of it. No storage I/O happens until Init.
func New(cfg *config.Config) (*App, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:   cfg,
		Notes:    service.NewNoteService(repository.NewNoteRepository(store)),
		Comments: service.NewCommentRegistry(),
	}, nil
}

// Init performs the one explicit startup load of the note collection
func (a *App) Init(ctx context.Context) error {
	if _, err := a.Notes.Load(ctx); err != nil {
		return fmt.Errorf("failed to initialize note store: %w", err)
	}
	return nil
}

// OpenStore opens the kv driver named in configuration
func OpenStore(cfg *config.Config) (kv.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return kv.NewMemory(), nil

	case config.DriverRedis:
		client, err := pkgredis.NewClient(
			cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password,
			cfg.Redis.DB, cfg.Redis.PoolSize,
		)
		if err != nil {
			return nil, err
		}
		pkglogger.GetLogger().Info().
			Str("host", cfg.Redis.Host).Int("db", cfg.Redis.DB).
			Msg("redis blob store ready")
		return kv.NewRedis(client), nil

	case config.DriverMySQL:
		db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, err := kv.NewGorm(db)
		if err != nil {
			return nil, err
		}
		pkglogger.GetLogger().Info().
			Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).
			Msg("mysql blob store ready")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
