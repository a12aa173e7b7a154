package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const defaultProbeTimeout = 2 * time.Second

// HealthPinger can be implemented by components to expose a specialized
// health check. HealthPing must return nil when the component is healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// PingerFunc adapts a function to HealthPinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) HealthPing(ctx context.Context) error { return f(ctx) }

// PingChecker is a HealthChecker that periodically calls a HealthPinger and
// caches the result. It starts unhealthy until the first successful probe.
type PingChecker struct {
	name         string
	pinger       HealthPinger
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewPingChecker(name string, pinger HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *PingChecker {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &PingChecker{name: name, pinger: pinger, log: log, probeTimeout: probeTimeout}
}

func (c *PingChecker) Name() string { return c.name }

// IsHealthy returns the cached health status (non-blocking).
func (c *PingChecker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Probe runs a single check and updates the cached status.
func (c *PingChecker) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	if err := c.pinger.HealthPing(probeCtx); err != nil {
		c.log.Error().Stack().
			Str("checker", c.name).
			Err(err).
			Msg("health check failed")
		c.healthy.Store(0)
		return false
	}
	c.healthy.Store(1)
	return true
}

// Start begins periodic health checking.
func (c *PingChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}
