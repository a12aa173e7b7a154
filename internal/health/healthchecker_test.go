package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) { /* no-op */ }

func TestServiceHealthChecker_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := zerolog.Nop()

	a := &fakeChecker{name: "a"}
	b := &fakeChecker{name: "b"}
	a.healthy.Store(1)
	b.healthy.Store(1)

	svc := NewServiceHealthChecker(logger, a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	// Initially healthy
	waitTrue(t, func() bool { return svc.IsHealthy() })

	// Flip one to unhealthy
	b.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })

	// Recover
	b.healthy.Store(1)
	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}

func TestServiceHealthChecker_Components(t *testing.T) {
	a := &fakeChecker{name: "store"}
	b := &fakeChecker{name: "summarizer"}
	a.healthy.Store(1)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)
	got := svc.Components()
	if !got["store"] || got["summarizer"] {
		t.Fatalf("unexpected components: %v", got)
	}
}

func TestPingChecker_ProbeTracksPinger(t *testing.T) {
	var fail atomic.Bool
	p := PingerFunc(func(ctx context.Context) error {
		if fail.Load() {
			return errors.New("boom")
		}
		return nil
	})
	c := NewPingChecker("store", p, zerolog.Nop(), 0)
	if c.IsHealthy() {
		t.Fatalf("checker must start unhealthy")
	}
	if !c.Probe(context.Background()) || !c.IsHealthy() {
		t.Fatalf("expected healthy after successful probe")
	}
	fail.Store(true)
	if c.Probe(context.Background()) || c.IsHealthy() {
		t.Fatalf("expected unhealthy after failed probe")
	}
}

func TestPingChecker_ProbeHonoursTimeout(t *testing.T) {
	p := PingerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	c := NewPingChecker("slow", p, zerolog.Nop(), 20*time.Millisecond)
	start := time.Now()
	if c.Probe(context.Background()) {
		t.Fatalf("expected probe to fail on timeout")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("probe did not respect timeout")
	}
}

func TestServiceHealthChecker_StartAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewPingChecker("store", PingerFunc(func(context.Context) error { return nil }), zerolog.Nop(), 0)
	svc := NewServiceHealthChecker(zerolog.Nop(), c)
	svc.StartAll(ctx, 10*time.Millisecond)

	waitTrue(t, svc.IsHealthy)
}
