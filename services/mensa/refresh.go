package mensa

import (
	"context"
	"log/slog"
	"time"

	"mensa-backend/lib/timezone"
)

// a wedged transfer must never straddle the next scheduled tick
const cycleTimeout = time.Minute * 10

// RunRefreshDaemon scrapes once immediately and then once per
// configured wall-clock hour until the context is cancelled. Cycles
// run strictly in sequence on this goroutine, so they never overlap; a
// failed cycle is logged and skipped, the previous snapshot stays
// authoritative until the next tick.
func (s *Service) RunRefreshDaemon(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.refreshHours[timezone.Now().Hour()] {
				continue
			}
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	err := s.refreshCycle(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "menu refresh cycle skipped", "err", err)
		return
	}
	slog.InfoContext(ctx, "menu refreshed")
}
