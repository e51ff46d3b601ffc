package workers

import (
	"context"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/store"
)

// CodesCleanupWorker periodically purges stale e-mail verification codes.
//
// Codes expire lazily at confirmation time, so correctness never depends on
// this worker; it only keeps users.codes from growing without bound. Rows
// older than retention are removed on every tick.
type CodesCleanupWorker struct {
	codes     store.CodeRepository
	interval  time.Duration
	retention time.Duration
	ctx       context.Context
	logger    *logger.Logger
}

func NewCodesCleanupWorker(ctx context.Context, codes store.CodeRepository, interval, retention time.Duration, logger *logger.Logger) *CodesCleanupWorker {
	return &CodesCleanupWorker{
		codes:     codes,
		interval:  interval,
		retention: retention,
		ctx:       ctx,
		logger:    logger,
	}
}

// Run starts the cleanup loop in its own goroutine. The loop stops when the
// worker's context is cancelled. An interval of zero disables the worker.
func (w *CodesCleanupWorker) Run() {
	if w.interval <= 0 {
		w.logger.Info().Msg("codes cleanup worker disabled")
		return
	}

	w.logger.Info().Dur("interval", w.interval).Msg("codes cleanup worker started")

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("codes cleanup worker stopped")
				return
			case <-ticker.C:
				w.sweep()
			}
		}
	}()
}

func (w *CodesCleanupWorker) sweep() {
	cutoff := time.Now().Add(-w.retention)

	removed, err := w.codes.DeleteCodesBefore(w.ctx, cutoff)
	if err != nil {
		// transient DB errors are not fatal here; the next tick retries
		w.logger.Err(err).Msg("codes cleanup sweep failed")
		return
	}

	if removed > 0 {
		w.logger.Info().Int64("removed", removed).Msg("purged stale verification codes")
	}
}
