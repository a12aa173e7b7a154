package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhuonas/ai-snippet-service/internal/health"
)

// NewStoreHealthChecker returns a checker that probes the store. Stores that
// implement health.HealthPinger are pinged directly; others are probed with a
// cheap Count query.
func NewStoreHealthChecker(s Store, log zerolog.Logger, probeTimeout time.Duration) *health.PingChecker {
	return health.NewPingChecker("store", pingerFor(s), log, probeTimeout)
}

func pingerFor(s Store) health.HealthPinger {
	if p, ok := s.(health.HealthPinger); ok {
		return p
	}
	return health.PingerFunc(func(ctx context.Context) error {
		_, err := s.Snippets().Count(ctx)
		return err
	})
}
