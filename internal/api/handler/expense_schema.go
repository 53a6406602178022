package handler

import (
	"time"

	"github.com/expensio/expense-tracker/internal/core/ports"
)

type createExpenseRequest struct {
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Date        string  `json:"date"        validate:"required"`
	Description string  `json:"description" validate:"required,min=2,max=60"`
	CategoryID  string  `json:"categoryId"  validate:"required,mongodb"`
	UserID      string  `json:"userId"      validate:"required,mongodb"`
}

type listExpensesRequest struct {
	Category        string `query:"category"        validate:"omitempty,max=20"`
	Username        string `query:"username"        validate:"omitempty,max=20"`
	GroupByCategory bool   `query:"groupByCategory"`
	GroupByUsername bool   `query:"groupByUsername"`
	StartDate       string `query:"startDate"`
	EndDate         string `query:"endDate"`
	Page            int64  `query:"page"            validate:"omitempty,min=1"`
	Limit           int64  `query:"limit"           validate:"omitempty,min=1"`
}

func (req listExpensesRequest) toFilter() (ports.ExpenseFilter, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return ports.ExpenseFilter{}, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return ports.ExpenseFilter{}, err
	}

	return ports.ExpenseFilter{
		Category:        req.Category,
		Username:        req.Username,
		GroupByCategory: req.GroupByCategory,
		GroupByUsername: req.GroupByUsername,
		StartDate:       start,
		EndDate:         end,
		Page:            req.Page,
		Limit:           req.Limit,
	}, nil
}

// expenseRowResponse is one row of a paginated expense listing.
type expenseRowResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	User        string    `json:"user"`
}

// listExpensesResponse is the paginated shape: rows plus a total for page controls.
type listExpensesResponse struct {
	Data  []expenseRowResponse `json:"data"`
	Total int64                `json:"total"`
}

// expenseGroupResponse is one bucket of a grouped listing.
type expenseGroupResponse struct {
	Category    string  `json:"category,omitempty"`
	Username    string  `json:"username,omitempty"`
	TotalAmount float64 `json:"totalAmount"`
}

// groupedExpensesResponse is the grouped shape: no pagination, no total.
type groupedExpensesResponse struct {
	Data []expenseGroupResponse `json:"data"`
}

func toListExpensesResponse(page *ports.ExpensePage) listExpensesResponse {
	data := make([]expenseRowResponse, len(page.Data))
	for i, row := range page.Data {
		data[i] = expenseRowResponse{
			ID:          row.ID,
			Date:        row.Date,
			Amount:      row.Amount,
			Description: row.Description,
			Category:    row.Category,
			User:        row.User,
		}
	}
	return listExpensesResponse{Data: data, Total: page.Total}
}

func toGroupedExpensesResponse(grouped *ports.GroupedExpenses) groupedExpensesResponse {
	data := make([]expenseGroupResponse, len(grouped.Data))
	for i, g := range grouped.Data {
		data[i] = expenseGroupResponse{
			Category:    g.Category,
			Username:    g.Username,
			TotalAmount: g.TotalAmount,
		}
	}
	return groupedExpensesResponse{Data: data}
}

type categoryRefResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type userRefResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type expenseDetailResponse struct {
	ID          string              `json:"id"`
	Amount      float64             `json:"amount"`
	Date        time.Time           `json:"date"`
	Description string              `json:"description"`
	Category    categoryRefResponse `json:"category"`
	User        userRefResponse     `json:"user"`
}

func toExpenseDetailResponse(d *ports.ExpenseDetail) expenseDetailResponse {
	return expenseDetailResponse{
		ID:          d.ID,
		Amount:      d.Amount,
		Date:        d.Date,
		Description: d.Description,
		Category: categoryRefResponse{
			ID:          d.Category.ID,
			Name:        d.Category.Name,
			Description: d.Category.Description,
		},
		User: userRefResponse{
			ID:       d.User.ID,
			Name:     d.User.Name,
			LastName: d.User.LastName,
			Username: d.User.Username,
			Email:    d.User.Email,
		},
	}
}
