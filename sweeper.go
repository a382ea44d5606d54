package tiercache

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
)

// DefaultSweepInterval is used by Sweeper when no interval is set.
const DefaultSweepInterval = time.Minute

// Sweeper drives Cache.Cleanup on a ticker. The cache core only
// exposes the sweep primitive; Sweeper is the external scheduler a
// host embeds when it wants stale entries removed proactively.
type Sweeper struct {
	Cache    Cache
	Interval time.Duration
	Log      log.Interface
}

// Run blocks, sweeping every Interval until ctx is done, and returns
// the context's error.
func (s *Sweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	l := s.Log
	if l == nil {
		l = &log.Logger{Handler: text.Default, Level: log.ErrorLevel}
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := s.Cache.Cleanup(ctx)
			if err != nil {
				l.WithError(err).Error("sweep failed")
				continue
			}
			if removed > 0 {
				l.WithField("removed", removed).Debug("sweep")
			}
		}
	}
}
