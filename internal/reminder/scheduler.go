// Package reminder implements the daily payment-reminder pipeline: a
// scheduler scans the ledger for users with outstanding one-to-one debts and
// fans the results out to sharded workers, which deduplicate per debtor per
// day and hand off to a Notifier.
package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// Scheduler triggers a debt scan once per day at a fixed UTC hour.
type Scheduler struct {
	balances   ports.BalanceService
	dispatcher *Dispatcher
	hour       int
	log        zerolog.Logger
}

func NewScheduler(balances ports.BalanceService, dispatcher *Dispatcher, hour int, log zerolog.Logger) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 9
	}
	return &Scheduler{balances: balances, dispatcher: dispatcher, hour: hour, log: log}
}

// Run blocks until ctx is cancelled, firing a scan at the configured hour
// each day.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		wait := time.Until(s.nextRun(time.Now().UTC()))
		s.log.Info().Dur("wait", wait).Int("hour_utc", s.hour).Msg("reminder scan scheduled")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.Scan(ctx)
		}
	}
}

// Scan runs a single debt scan and enqueues every debtor found.
func (s *Scheduler) Scan(ctx context.Context) {
	debtors, err := s.balances.GetUsersWithOutstandingDebts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("debt scan failed")
		return
	}
	s.log.Info().Int("debtors", len(debtors)).Msg("debt scan complete")
	s.dispatcher.EnqueueBatch(debtors)
}

// nextRun returns the next occurrence of the configured hour strictly after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
