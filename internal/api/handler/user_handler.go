package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensio/expense-tracker/internal/api/metrics"
	"github.com/expensio/expense-tracker/internal/core/ports"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new user. This route is exempt from the token guard.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// List returns a page of users plus the total match count.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        fullName   query     string  false  "Substring match on name or lastName"
// @Param        username   query     string  false  "Substring match on username"
// @Param        email      query     string  false  "Substring match on email"
// @Param        startDate  query     string  false  "Creation range start (with endDate)"
// @Param        endDate    query     string  false  "Creation range end (with startDate)"
// @Param        skip       query     int     false  "Rows to skip (default 0)"
// @Param        limit      query     int     false  "Page size (default 10)"
// @Success      200        {object}  listUsersResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	var req listUsersRequest
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
	return c.JSON(http.StatusOK, toListUsersResponse(page))
}

// Update applies a partial update; the password is re-hashed only if supplied.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.Update(c.Request().Context(), req.ID, ports.UpdateUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idResponse{ID: req.ID})
}

// Delete hard-deletes a user.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
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
