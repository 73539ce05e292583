// Package metrics defines and registers all custom Prometheus metrics for the
// SplitR API. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitr"

// ExpensesCreatedTotal counts newly recorded expenses.
// Label:
//   - split_type: "equal", "percentage", or "exact"
var ExpensesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Total number of expenses recorded, by split type.",
	},
	[]string{"split_type"},
)

// ExpensesDeletedTotal counts deleted expenses.
var ExpensesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_deleted_total",
		Help:      "Total number of expenses deleted.",
	},
)

// SettlementsCreatedTotal counts recorded settlements.
var SettlementsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlements_created_total",
		Help:      "Total number of settlements recorded.",
	},
)

// GroupsCreatedTotal counts created groups.
var GroupsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "groups_created_total",
		Help:      "Total number of groups created.",
	},
)

// RemindersSentTotal counts payment reminders delivered to debtors.
var RemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of payment reminders sent.",
	},
)

// RemindersSkippedTotal counts reminders suppressed by deduplication.
var RemindersSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_skipped_total",
		Help:      "Total number of payment reminders skipped as already sent today.",
	},
)

// RemindersErrorsTotal counts reminder deliveries that failed.
// Label:
//   - reason: short description of the failure (e.g. "dedup_check", "notify")
var RemindersErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_errors_total",
		Help:      "Total number of payment reminder failures, by reason.",
	},
	[]string{"reason"},
)

// ReminderQueueDepth tracks pending reminders in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReminderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reminder_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
