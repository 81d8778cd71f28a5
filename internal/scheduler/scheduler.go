// Package scheduler runs the optional end-of-shift production digest.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dfagundes/prodboard/internal/period"
	"github.com/dfagundes/prodboard/internal/report"
	"github.com/dfagundes/prodboard/internal/store"
)

// Digest periodically logs the current day's production totals so shift
// summaries land in the server log even when nobody opens the dashboard.
type Digest struct {
	cron   *cron.Cron
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a digest scheduler over the given store.
func New(st *store.Store, logger *zap.Logger) *Digest {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Digest{
		cron:   cron.New(),
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the digest at the given 5-field cron spec and starts
// the scheduler.
func (d *Digest) Start(spec string) error {
	if _, err := d.cron.AddFunc(spec, d.Run); err != nil {
		return err
	}
	d.cron.Start()
	d.logger.Info("digest scheduled", zap.String("spec", spec))
	return nil
}

// Stop halts the scheduler, waiting for a running digest to finish.
func (d *Digest) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
}

// Run logs today's totals once. Exported so the CLI and tests can trigger
// a digest outside the schedule.
func (d *Digest) Run() {
	now := d.now()
	rep, err := report.Build(d.store, period.Resolve(period.TokenToday, now))
	if err != nil {
		d.logger.Error("digest failed", zap.Error(err))
		return
	}
	d.logger.Info("production digest",
		zap.String("date", now.Format(period.DateLayout)),
		zap.Int("assembled", rep.Totals.Assembled),
		zap.Int("painted", rep.Totals.Painted),
		zap.Int("tested", rep.Totals.Tested),
		zap.Int("reworked", rep.Totals.Reworked),
		zap.Int("records", len(rep.Detail)),
		zap.Any("tested_by_model", rep.ByModel),
	)
}
