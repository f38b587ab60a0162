package jobs

import (
	"context"
	"time"

	"wagergate/ledger"
	"wagergate/saba"

	"go.uber.org/zap"
)

const staleAfter = 24 * time.Hour

// StartReconcileScheduler periodically probes the bet-detail API for
// tickets that have been running for too long and logs those the
// provider already reports as settled. It never mutates the ledger or
// the wallet: the provider is expected to re-deliver the settle
// callback, and this job only makes the drift visible. Cancelling ctx
// stops the scheduler.
func StartReconcileScheduler(ctx context.Context, reports *ledger.Repository, details saba.DetailFetcher, log *zap.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reconcileOnce(ctx, reports, details, log)
			}
		}
	}()
}

func reconcileOnce(ctx context.Context, reports *ledger.Repository, details saba.DetailFetcher, log *zap.Logger) {
	stale, err := reports.StaleRunning(staleAfter)
	if err != nil {
		log.Error("reconcile: list stale tickets", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	for _, row := range stale {
		enriched, err := details.Fetch(ctx, row.TrxID)
		if err != nil {
			log.Warn("reconcile: bet detail unavailable",
				zap.String("trx_id", row.TrxID), zap.Error(err))
			continue
		}
		switch enriched.Result {
		case "", "running", "waiting":
			continue
		default:
			log.Warn("reconcile: ticket settled upstream but still running here",
				zap.String("trx_id", row.TrxID),
				zap.String("upstream_result", enriched.Result),
				zap.Time("bet_time", row.BetTime))
		}
	}
}
