package persist

import (
	"context"
	"fmt"

	"github.com/tuxgo/tuxgo/internal/config"
	"go.uber.org/zap"
)

// OpenSaveStore connects to the configured database, applies pending
// migrations and returns its SaveStore.
func OpenSaveStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (SaveStore, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db.Pool); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("save store ready", zap.String("driver", cfg.Driver))
		return NewPGSaveRepo(db), nil

	case "sqlite", "":
		db, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("save store ready", zap.String("driver", "sqlite"), zap.String("path", cfg.DSN))
		return NewSQLiteSaveRepo(db), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
