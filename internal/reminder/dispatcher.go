package reminder

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/api/metrics"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// DedupStore suppresses repeat reminders within a day.
type DedupStore interface {
	AlreadySent(ctx context.Context, userID string, day time.Time) (bool, error)
	MarkSent(ctx context.Context, userID string, day time.Time) error
}

// Dispatcher routes debtor summaries to a fixed set of workers using
// consistent hashing on the debtor id, so one debtor is never processed by
// two workers at once.
type Dispatcher struct {
	workers  []chan ports.DebtorSummary
	notifier Notifier
	dedup    DedupStore
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier Notifier, dedup DedupStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.DebtorSummary, numWorkers),
		notifier: notifier,
		dedup:    dedup,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.DebtorSummary, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a debtor to the worker responsible for their id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(debtor ports.DebtorSummary) {
	idx := d.shardIndex(debtor.UserID)
	d.workers[idx] <- debtor
	metrics.ReminderQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues every debtor from a scan.
func (d *Dispatcher) EnqueueBatch(debtors []ports.DebtorSummary) {
	for _, debtor := range debtors {
		d.Enqueue(debtor)
	}
}

// shardIndex maps a debtor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.DebtorSummary) {
	for {
		select {
		case <-ctx.Done():
			return
		case debtor, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, debtor)
			metrics.ReminderQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, debtor ports.DebtorSummary) {
	today := time.Now().UTC()

	sent, err := d.dedup.AlreadySent(ctx, debtor.UserID, today)
	if err != nil {
		metrics.RemindersErrorsTotal.WithLabelValues("dedup_check").Inc()
		d.log.Error().Err(err).
			Str("user_id", debtor.UserID).
			Int("worker_id", workerID).
			Msg("reminder dedup check failed")
		return
	}
	if sent {
		metrics.RemindersSkippedTotal.Inc()
		d.log.Debug().Str("user_id", debtor.UserID).Msg("reminder already sent today")
		return
	}

	if err := d.notifier.Notify(ctx, debtor); err != nil {
		metrics.RemindersErrorsTotal.WithLabelValues("notify").Inc()
		d.log.Error().Err(err).
			Str("user_id", debtor.UserID).
			Int("worker_id", workerID).
			Msg("reminder delivery failed")
		return
	}

	if err := d.dedup.MarkSent(ctx, debtor.UserID, today); err != nil {
		// The reminder went out; worst case the debtor gets one extra.
		metrics.RemindersErrorsTotal.WithLabelValues("dedup_mark").Inc()
		d.log.Warn().Err(err).Str("user_id", debtor.UserID).Msg("reminder mark failed")
	}

	metrics.RemindersSentTotal.Inc()
}
