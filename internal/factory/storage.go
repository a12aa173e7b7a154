package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhuonas/ai-snippet-service/internal/config"
	"github.com/jhuonas/ai-snippet-service/internal/localstate"
	"github.com/jhuonas/ai-snippet-service/internal/store/postgres"
	"github.com/jhuonas/ai-snippet-service/internal/store/sqlite"
	"github.com/jhuonas/ai-snippet-service/internal/store/sqlstore"
)

// NewStore opens the configured store and applies its schema.
// Bootstrap is bounded by cfg.BootstrapTimeoutSeconds.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sqlstore.Store, error) {
	timeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	bootstrapCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		st  *sqlstore.Store
		err error
	)
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("SNIPPET_SERVICE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		st, err = postgres.Bootstrap(bootstrapCtx, cfg.PostgresDSN)
	case "sqlite":
		path, perr := localstate.ResolveSQLitePath(cfg.SQLitePath)
		if perr != nil {
			return nil, fmt.Errorf("resolve sqlite path: %w", perr)
		}
		log.Debug().Str("path", path).Msg("using sqlite store")
		st, err = sqlite.Bootstrap(bootstrapCtx, path)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap completed")
	return st, nil
}
