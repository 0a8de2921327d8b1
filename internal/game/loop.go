package game

import (
	"context"
	"time"
)

// Run drives the simulation: a fixed tick stepping the park, a
// periodic autosave, and on-demand saves scheduled by commands. It
// blocks until ctx is canceled, then persists one final time.
func (e *Engine) Run(ctx context.Context, tick, autosave time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	saver := time.NewTicker(autosave)
	defer saver.Stop()

	last := e.clock.Now()
	for {
		select {
		case <-ctx.Done():
			// The loop's context is gone; give the final save its own.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return e.SaveNow(flushCtx)

		case <-ticker.C:
			now := e.clock.Now()
			e.Step(now.Sub(last).Seconds())
			last = now

		case <-saver.C:
			if err := e.SaveNow(ctx); err != nil {
				e.logger.Printf("autosave failed: %v", err)
			}

		case <-e.saveCh:
			if err := e.SaveNow(ctx); err != nil {
				e.logger.Printf("save failed: %v", err)
			}
		}
	}
}
