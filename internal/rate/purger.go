package rate

import (
	"context"
	"sync"
	"time"

	"fxsummary/internal/adapters"
	"fxsummary/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultPurgeInterval = 10 * time.Minute

// CachePurger periodically drops expired range cache entries so stale series don't hold memory
// until they happen to be looked up again.
type CachePurger struct {
	cache    adapters.RangeCache
	metrics  *metrics.Metrics
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (p *CachePurger) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(p.purge),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	p.mu.Lock()
	p.sched = scheduler
	p.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := p.Shutdown(); sdErr != nil {
			logrus.Errorf("Cache purger shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (p *CachePurger) purge() {
	execID := uuid.NewString()
	removed := p.cache.PurgeExpired()
	left := p.cache.Len()
	p.metrics.SetCacheEntries(left)
	logrus.WithFields(logrus.Fields{"exec_id": execID, "removed": removed, "left": left}).Debug("Purged expired rate cache entries")
}

func (p *CachePurger) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sched == nil {
		return nil
	}
	err := p.sched.Shutdown()
	p.sched = nil
	return err
}

func NewCachePurger(cache adapters.RangeCache, m *metrics.Metrics, interval time.Duration) *CachePurger {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	return &CachePurger{cache: cache, metrics: m, interval: interval}
}
