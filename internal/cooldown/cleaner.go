package cooldown

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultCleanerInterval = time.Hour

// Cleaner periodically deletes expired rows from the cooldowns table.
type Cleaner struct {
	store    *GormStore
	interval time.Duration
}

func NewCleaner(store *GormStore, interval time.Duration) *Cleaner {
	if store == nil {
		return nil
	}
	if interval <= 0 {
		interval = defaultCleanerInterval
	}
	return &Cleaner{store: store, interval: interval}
}

// Start launches the cleanup loop in a background goroutine.
func (c *Cleaner) Start(ctx context.Context) {
	if c == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go c.run(ctx)
	log.Infof("cooldown cleaner started (interval=%s)", c.interval)
}

func (c *Cleaner) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.cleanupOnce(ctx)
		timer := time.NewTimer(c.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
	}
}

func (c *Cleaner) cleanupOnce(ctx context.Context) {
	deleted, errPurge := c.store.PurgeExpired(ctx)
	if errPurge != nil {
		log.WithError(errPurge).Warn("cooldown cleaner: purge failed")
		return
	}
	if deleted > 0 {
		log.Infof("cooldown cleaner: deleted %d expired rows", deleted)
	}
}
