package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"taskops/internal/config"
	"taskops/internal/handler"
	"taskops/internal/logger"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Health *handler.HealthHandler
	User   *handler.UserHandler
	Task   *handler.TaskHandler
	Report *handler.ReportHandler
}

// Register wires middleware, the error handler and routes.
func Register(e *echo.Echo, cfg *config.Config, log *zap.Logger, h Handlers) {
	log = logger.OrNop(log)

	e.HTTPErrorHandler = errorHandler(log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.GET("/", h.Health.Root)

	if cfg.IsProduction() {
		forbidden := func(c echo.Context) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "Documentation is not available in production",
			})
		}
		e.GET("/api-docs", forbidden)
		e.GET("/api-docs/*", forbidden)
	} else {
		e.GET("/api-docs/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")
	api.GET("/health", h.Health.Health)

	users := api.Group("/users")
	users.POST("", h.User.CreateUser)
	users.GET("", h.User.ListUsers)
	users.GET("/active/count", h.User.CountActiveUsers)
	users.GET("/:id", h.User.GetUser)
	users.PUT("/:id", h.User.UpdateUser)
	users.DELETE("/:id", h.User.DeleteUser)

	tasks := api.Group("/tasks")
	tasks.POST("", h.Task.CreateTask)
	tasks.GET("", h.Task.ListTasks)
	tasks.GET("/statistics", h.Task.TaskStatistics)
	tasks.GET("/overdue", h.Task.ListOverdueTasks)
	tasks.GET("/:id", h.Task.GetTask)
	tasks.PUT("/:id", h.Task.UpdateTask)
	tasks.DELETE("/:id", h.Task.DeleteTask)

	reports := api.Group("/reports")
	reports.POST("", h.Report.GenerateReport)
	reports.GET("", h.Report.ListReports)
	reports.GET("/statistics", h.Report.ReportStatistics)
	reports.GET("/:id", h.Report.GetReport)
	reports.DELETE("/:id", h.Report.DeleteReport)
}

// RouteNotFoundResponse is returned for unknown routes.
type RouteNotFoundResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// InternalErrorResponse is returned for unhandled errors and recovered panics.
type InternalErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if body, ok := he.Message.(handler.Response); ok {
				_ = c.JSON(he.Code, body)
				return
			}
			switch {
			case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
				_ = c.JSON(http.StatusNotFound, RouteNotFoundResponse{
					Error:     "Route not found",
					Path:      c.Request().URL.Path,
					Timestamp: handler.Timestamp(),
				})
				return
			case he.Code < http.StatusInternalServerError:
				_ = c.JSON(he.Code, handler.Response{
					Error:     fmt.Sprint(he.Message),
					Timestamp: handler.Timestamp(),
				})
				return
			}
		}

		log.Error("Unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
		_ = c.JSON(http.StatusInternalServerError, InternalErrorResponse{
			Error:     "Internal server error",
			Message:   err.Error(),
			Timestamp: handler.Timestamp(),
		})
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
