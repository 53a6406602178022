package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensio/expense-tracker/internal/api/metrics"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// ExpenseHandler handles HTTP requests for the expense ledger.
type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create records an expense. Both references must resolve or the request
// fails with 404 before anything is written.
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createExpenseRequest  true  "Expense details"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateExpenseInput{
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}

	metrics.ExpensesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// List returns either grouped totals or a paginated detail listing, depending
// on the groupByCategory/groupByUsername flags.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        category         query     string  false  "Exact match on category name"
// @Param        username         query     string  false  "Exact match on username"
// @Param        groupByCategory  query     bool    false  "Group totals per category"
// @Param        groupByUsername  query     bool    false  "Group totals per user"
// @Param        startDate        query     string  false  "Expense date range start (with endDate)"
// @Param        endDate          query     string  false  "Expense date range end (with startDate)"
// @Param        page             query     int     false  "1-based page (default 1, ungrouped only)"
// @Param        limit            query     int     false  "Page size (default 10, ungrouped only)"
// @Success      200              {object}  listExpensesResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	var req listExpensesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	filter, err := req.toFilter()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	switch r := result.(type) {
	case *ports.GroupedExpenses:
		return c.JSON(http.StatusOK, toGroupedExpensesResponse(r))
	case *ports.ExpensePage:
		return c.JSON(http.StatusOK, toListExpensesResponse(r))
	default:
		return fmt.Errorf("unexpected expense list result %T", result)
	}
}

// Get returns one expense with its category and user resolved inline.
//
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Expense id"
// @Success      200  {object}  expenseDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	var req idParam
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExpenseDetailResponse(detail))
}

// Delete hard-deletes an expense.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Expense id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	var req idParam
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Remove(c.Request().Context(), req.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: deletedMessage})
}
