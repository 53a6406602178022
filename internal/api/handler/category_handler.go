package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensio/expense-tracker/internal/core/ports"
)

// CategoryHandler handles HTTP requests for the category directory.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create adds a category.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category details"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// List returns a page of categories plus the total match count.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        name         query     string  false  "Substring match on name"
// @Param        description  query     string  false  "Substring match on description"
// @Param        startDate    query     string  false  "Creation range start (with endDate)"
// @Param        endDate      query     string  false  "Creation range end (with startDate)"
// @Param        page         query     int     false  "1-based page (default 1)"
// @Param        limit        query     int     false  "Page size (default 10)"
// @Success      200          {object}  listCategoriesResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	var req listCategoriesRequest
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

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListCategoriesResponse(page))
}

// Update applies a partial update to a category.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category id"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.Update(c.Request().Context(), req.ID, ports.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idResponse{ID: req.ID})
}
