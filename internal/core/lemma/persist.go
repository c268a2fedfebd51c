package lemma

import (
	"context"
	"time"

	"triage/internal/platform/logger"
)

// persistLoop drains the learned-entry queue into the store. Batches are cut
// on size or interval, whichever fires first. The final drain after the queue
// closes flushes whatever is left.
func (r *Resolver) persistLoop() {
	defer r.wg.Done()

	pending := make(map[string]string, r.cfg.FlushEvery)
	ticker := time.NewTicker(r.cfg.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(pending) == 0 || r.store == nil {
			clear(pending)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.store.PutBatch(ctx, pending); err != nil {
			logger.Named("lemma").Warn().Err(err).Int("entries", len(pending)).Msg("learned dictionary flush failed")
		}
		cancel()
		clear(pending)
	}

	for {
		select {
		case e, ok := <-r.queue:
			if !ok {
				flush()
				return
			}
			pending[e.surface] = e.base
			if len(pending) >= r.cfg.FlushEvery {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
