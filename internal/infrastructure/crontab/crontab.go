package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/logger"
	"chemezy-server/internal/utils/platformerrors"
)

const (
	DefaultStatsInterval = 60               // in minutes
	CronJobTimeout       = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab     *crontab.Crontab
	reaction *reaction.Service
}

func NewCrontab(reactionService *reaction.Service) *Crontab {
	return &Crontab{
		ctab:     crontab.New(),
		reaction: reactionService,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()
	// execute once on server start
	c.logStats(ctx)

	// Schedule stats job if enabled
	cfg := config.GetGlobal()
	if cfg != nil && cfg.StatsCronEnabled {
		interval := cfg.StatsIntervalMinutes
		if interval <= 0 {
			interval = DefaultStatsInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		if interval >= 60 {
			cronExpr = "0 * * * *"
		}
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.logStats(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add stats job")
		}
		log.Info().Msgf("Stats logging scheduled: every %d minute(s)", interval)
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		// Reload config
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) logStats(ctx context.Context) {
	log := logger.GetLogger()
	stats, err := c.reaction.Stats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to collect reaction stats")
		return
	}
	log.Info().
		Int64("cache_entries", stats.CacheEntries).
		Int64("discoveries", stats.Discoveries).
		Msg("reaction engine stats")
}
