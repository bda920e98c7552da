package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"oja-pos-licensing/internal/domain/ports/repository"
	"oja-pos-licensing/internal/infra/metrics"
)

// PoolStatsFunc reports total, idle and in-use connections.
type PoolStatsFunc func() (total, idle, inUse int32)

// StatsWorker periodically publishes pool and redemption gauges.
type StatsWorker struct {
	interval    time.Duration
	redemptions repository.RedemptionRepository
	poolStats   PoolStatsFunc
	log         *zerolog.Logger
}

func NewStatsWorker(interval time.Duration, redemptions repository.RedemptionRepository, poolStats PoolStatsFunc, logger *zerolog.Logger) *StatsWorker {
	l := logger.With().Str("component", "StatsWorker").Logger()
	return &StatsWorker{
		interval:    interval,
		redemptions: redemptions,
		poolStats:   poolStats,
		log:         &l,
	}
}

func (w *StatsWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting stats worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping stats worker")
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick publishes one round of gauges.
func (w *StatsWorker) Tick(ctx context.Context) {
	if w.poolStats != nil {
		metrics.SetDBPoolStats(w.poolStats())
	}
	if w.redemptions == nil {
		return
	}
	counts, err := w.redemptions.CountByPlan(ctx, repository.NoTX)
	if err != nil {
		w.log.Error().Err(err).Msg("count redemptions")
		return
	}
	metrics.SetRedemptionsByPlan(counts)
}
