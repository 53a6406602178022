package ports

import (
	"context"
	"time"
)

// CreateExpenseInput carries the fields needed to record an expense.
type CreateExpenseInput struct {
	Amount      float64
	Date        time.Time
	Description string
	CategoryID  string
	UserID      string
}

// ExpenseService defines use-case operations of the expense ledger.
type ExpenseService interface {
	// Create validates both references first and fails fast with the
	// directories' not-found errors before any write is attempted.
	Create(ctx context.Context, input CreateExpenseInput) (string, error)
	// List returns *GroupedExpenses when either group-by flag is set,
	// *ExpensePage otherwise.
	List(ctx context.Context, filter ExpenseFilter) (ExpenseListResult, error)
	Get(ctx context.Context, id string) (*ExpenseDetail, error)
	Remove(ctx context.Context, id string) error
}

// ReportCache caches grouped aggregation results between expense writes.
// Implementations must degrade to a miss on any backend failure.
type ReportCache interface {
	Get(ctx context.Context, fingerprint string) (*GroupedExpenses, bool)
	Set(ctx context.Context, fingerprint string, result *GroupedExpenses)
	// Invalidate drops all cached reports (any expense write changes every group).
	Invalidate(ctx context.Context)
}
