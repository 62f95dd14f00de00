package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lancast/internal/logging"
)

// reapLoop periodically evicts devices whose last advertisement is older
// than the stale timeout. The reaper has no protocol awareness; it is the
// single removal path for every watcher's records.
func (e *Engine) reapLoop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.reapOnce(time.Now())
		}
	}
}

// reapOnce removes every device not seen within the stale timeout, as of
// now. Returns the number of devices removed.
func (e *Engine) reapOnce(now time.Time) int {
	removed := 0
	for _, d := range e.registry.GetAll() {
		if now.Sub(d.LastSeen) > e.opts.StaleTimeout {
			e.registry.Remove(d.ID)
			removed++
			logging.Info("Removed stale device",
				zap.String("device_id", d.ID),
				zap.String("name", d.Name),
				zap.Duration("age", now.Sub(d.LastSeen)),
			)
		}
	}
	return removed
}
