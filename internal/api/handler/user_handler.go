package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// UserHandler serves user administration and the personal dashboard.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List users with summary counts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Param        search  query     string  false  "Case-insensitive match on name or email"
// @Success      200     {object}  analytics.UserPage
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	defer metrics.ObserveReport("users", time.Now())

	var q listUsersQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	// defaults apply only to absent parameters; an explicit 0 is rejected downstream
	if c.QueryParam("page") == "" {
		q.Page = analytics.DefaultPage
	}
	if c.QueryParam("limit") == "" {
		q.Limit = analytics.DefaultLimit
	}

	page, err := h.service.List(c.Request().Context(), ports.ListUsersInput{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Minified handles GET /v1/users/minified.
//
// @Summary      List users as id/name/email, sorted by name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive match on name or email"
// @Success      200     {array}   domain.UserRef
// @Router       /v1/users/minified [get]
func (h *UserHandler) Minified(c echo.Context) error {
	refs, err := h.service.Minified(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(refs))
}

// Dashboard handles GET /v1/users/dashboard.
//
// @Summary      Dashboard of the caller
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analytics.Dashboard
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	defer metrics.ObserveReport("dashboard", time.Now())

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	d, err := h.service.Dashboard(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Update name, role or status of a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateUserInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user and drop their project memberships
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
