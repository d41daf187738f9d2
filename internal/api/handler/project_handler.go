package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     actor.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PATCH /v1/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project and its tasks
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignUser handles PATCH /v1/projects/:id/assign/:userId.
//
// @Summary      Assign a user to a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Project id"
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  domain.Project
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /v1/projects/{id}/assign/{userId} [patch]
func (h *ProjectHandler) AssignUser(c echo.Context) error {
	p, err := h.service.AssignUser(c.Request().Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Stats handles GET /v1/projects/stats.
//
// @Summary      Per-project task statistics
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  analytics.ProjectStat
// @Router       /v1/projects/stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	defer metrics.ObserveReport("project_stats", time.Now())

	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(stats))
}

// Detailed handles GET /v1/projects/:id/detailed.
//
// @Summary      Project with members and tasks
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Project id"
// @Success      200 {object}  analytics.DetailedProject
// @Failure      404 {object}  errorResponse
// @Router       /v1/projects/{id}/detailed [get]
func (h *ProjectHandler) Detailed(c echo.Context) error {
	defer metrics.ObserveReport("project_detail", time.Now())

	d, err := h.service.Detailed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Tasks handles GET /v1/projects/:id/tasks: the caller's tasks in the project.
//
// @Summary      Caller's tasks in a project, by due date
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Project id"
// @Success      200 {array}   domain.Task
// @Failure      404 {object}  errorResponse
// @Router       /v1/projects/{id}/tasks [get]
func (h *ProjectHandler) Tasks(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.TasksForUser(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(tasks))
}
