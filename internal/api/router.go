package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskflow/taskflow-api/internal/api/handler"
	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"

	_ "github.com/taskflow/taskflow-api/docs"
)

// Dependencies groups everything the router mounts.
type Dependencies struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Projects  ports.ProjectService
	Tasks     ports.TaskService
	Analytics ports.AnalyticsService

	// Revocations is consulted by the Auth middleware; nil disables the check.
	Revocations middleware.RevocationChecker
	// Health lists the dependencies pinged by /health/ready.
	Health map[string]handler.Pinger

	JWTSecret string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	// Recover sits inside Metrics so recovered panics are still counted as 500s.
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.Recover())

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics)
	healthHandler := handler.NewHealthHandler(deps.Health)

	authMW := middleware.Auth(deps.JWTSecret, deps.Revocations)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	v1 := e.Group("/v1", authMW)

	users := v1.Group("/users")
	users.GET("", userHandler.List, adminOnly)
	users.GET("/minified", userHandler.Minified)
	users.GET("/dashboard", userHandler.Dashboard)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	projects := v1.Group("/projects")
	projects.POST("", projectHandler.Create, adminOnly)
	projects.GET("/stats", projectHandler.Stats, adminOnly)
	projects.GET("/:id/detailed", projectHandler.Detailed, adminOnly)
	projects.GET("/:id/tasks", projectHandler.Tasks, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	projects.PATCH("/:id", projectHandler.Update, adminOnly)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)
	projects.PATCH("/:id/assign/:userId", projectHandler.AssignUser, adminOnly)

	// creator-or-admin for update/delete is enforced by the task service
	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.Create)
	tasks.GET("/my-tasks", taskHandler.MyTasks)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	v1.GET("/analytics", analyticsHandler.Overview, adminOnly)

	// --- Health probes and ops (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var evt *zerolog.Event
			switch {
			case v.Status >= 500:
				evt = log.Error()
			case v.Status >= 400:
				evt = log.Warn()
			default:
				evt = log.Info()
			}
			if v.Error != nil {
				evt = evt.Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
