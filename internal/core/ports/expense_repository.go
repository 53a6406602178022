package ports

import (
	"context"
	"time"

	"github.com/expensio/expense-tracker/internal/core/domain"
)

// ExpenseFilter carries all query parameters for listing expenses.
type ExpenseFilter struct {
	Category        string // optional: exact match on joined category name
	Username        string // optional: exact match on joined username
	GroupByCategory bool
	GroupByUsername bool
	StartDate       time.Time // expense-date range; applied only when both bounds set
	EndDate         time.Time
	Page            int64 // 1-based; ignored in the grouped branch
	Limit           int64
}

// ExpenseRow is one joined record in a paginated expense listing.
type ExpenseRow struct {
	ID          string
	Date        time.Time
	Amount      float64
	Description string
	Category    string // joined category name
	User        string // joined username
}

// ExpenseGroup is one bucket of a grouped aggregation.
type ExpenseGroup struct {
	Category    string // set when grouping by category
	Username    string // set when grouping by username
	TotalAmount float64
}

// ExpensePage is the paginated shape of an expense listing.
type ExpensePage struct {
	Data  []ExpenseRow
	Total int64
}

// GroupedExpenses is the grouped shape: full result, no pagination, no total.
type GroupedExpenses struct {
	Data []ExpenseGroup
}

// ExpenseListResult is the tagged union of the two listing shapes. The branch
// is selected once, from the group-by flags, before any query runs.
type ExpenseListResult interface {
	expenseListResult()
}

func (*ExpensePage) expenseListResult()     {}
func (*GroupedExpenses) expenseListResult() {}

// CategoryRef is the category view embedded in an expense detail.
type CategoryRef struct {
	ID          string
	Name        string
	Description string
}

// UserRef is the user view embedded in an expense detail.
type UserRef struct {
	ID       string
	Name     string
	LastName string
	Username string
	Email    string
}

// ExpenseDetail is a single expense with its references resolved inline.
type ExpenseDetail struct {
	ID          string
	Amount      float64
	Date        time.Time
	Description string
	Category    CategoryRef
	User        UserRef
}

// ExpenseRepository defines persistence and aggregation operations over the
// expenses collection. Both listing methods inner-join category and user, so
// expenses with dangling references are dropped from results.
type ExpenseRepository interface {
	Insert(ctx context.Context, ex *domain.Expense) (string, error)
	// ListGrouped sums amounts per requested key combination, sorted by
	// totalAmount descending.
	ListGrouped(ctx context.Context, filter ExpenseFilter) (*GroupedExpenses, error)
	// ListPage returns matching rows sorted by date then id, plus the total
	// match count ignoring page/limit.
	ListPage(ctx context.Context, filter ExpenseFilter) (*ExpensePage, error)
	FindByID(ctx context.Context, id string) (*ExpenseDetail, error)
	// Delete hard-deletes and returns domain.ErrExpenseNotFound when nothing matched.
	Delete(ctx context.Context, id string) error
}
