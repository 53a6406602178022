// Package metrics defines all custom Prometheus metrics for the expense
// tracker API. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expense_tracker"

// ExpensesCreatedTotal counts expenses successfully recorded in the ledger.
var ExpensesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Total number of expenses recorded.",
	},
)

// UsersCreatedTotal counts successful sign-ups.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "bad_credentials" (login) or "invalid_token" (guarded route)
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ReportCacheTotal counts grouped-report cache lookups.
// Label:
//   - result: "hit" or "miss"
var ReportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Total number of grouped-report cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
