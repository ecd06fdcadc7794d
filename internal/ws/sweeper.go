package ws

import (
	"context"
	"log/slog"
	"time"
)

// StartSweeper reaps idle widget sessions in the background until ctx is
// canceled. Sessions are transient by design; a sweep only tears down
// connections whose clients stopped talking, so nothing is lost beyond the
// in-memory transcript.
func StartSweeper(ctx context.Context, sm *SessionManager, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if closed := sm.CloseIdle(ttl); closed > 0 {
					slog.Info("Widget session sweep complete", "closed", closed, "active", sm.Count())
				}
			}
		}
	}()
}
