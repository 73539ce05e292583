package reminder

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// Notifier delivers a payment reminder to one debtor.
type Notifier interface {
	Notify(ctx context.Context, debtor ports.DebtorSummary) error
}

// LogNotifier emits reminders to the structured log. It stands in for a real
// delivery channel (email, push) while keeping the full pipeline exercised.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, debtor ports.DebtorSummary) error {
	var total float64
	for _, d := range debtor.Debts {
		total += d.Amount
	}
	n.logger.Info().
		Str("user_id", debtor.UserID).
		Str("email", debtor.Email).
		Int("creditors", len(debtor.Debts)).
		Float64("total_owed", total).
		Msg("payment reminder")
	return nil
}
