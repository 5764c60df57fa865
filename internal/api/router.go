package api

import (
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/quaketrack/rbfetch/internal/api/controllers"
	"github.com/quaketrack/rbfetch/internal/logger"
)

// RegisterRoutes wires the status endpoints onto an echo instance.
func RegisterRoutes(e *echo.Echo, log *logger.Logger, status controllers.StatusSource, index controllers.WindowIndex) {

	// Middleware: Request Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("%s %s | %d | %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	ctrl := &controllers.StatusController{Status: status, Index: index}

	e.GET("/api/status", ctrl.HandleStatus)
	e.GET("/api/windows", ctrl.HandleWindows)
}
