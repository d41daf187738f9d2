package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/policy"
)

// ctxActor extracts the caller injected by the Auth middleware. A missing
// user id or role means the route was mounted without Auth.
func ctxActor(c echo.Context) (policy.Actor, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	role, _ := c.Get(middleware.KeyRole).(string)
	if id == "" || role == "" {
		return policy.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return policy.Actor{ID: id, Role: role}, nil
}

// ctxToken returns the id and expiry of the caller's token.
func ctxToken(c echo.Context) (string, time.Time) {
	id, _ := c.Get(middleware.KeyTokenID).(string)
	exp, _ := c.Get(middleware.KeyExpiresAt).(time.Time)
	return id, exp
}
