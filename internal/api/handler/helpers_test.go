package handler

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/api/middleware"
)

// newJSONContext builds an echo.Context for a JSON request. Handlers are
// called directly, so errors come back to the test instead of going
// through the central error handler.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, userID, role string) {
	c.Set(middleware.KeyUserID, userID)
	c.Set(middleware.KeyRole, role)
}

// httpStatus returns the status of an *echo.HTTPError, or 0.
func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
