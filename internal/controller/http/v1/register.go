package httpv1

import (
	"github.com/Egor213/LogOps/internal/metrics"
	"github.com/Egor213/LogOps/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

const maxBodySize = "1M"

type AppInfo struct {
	Name    string
	Version string
}

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters, info AppInfo) {
	handler.HideBanner = true
	handler.HidePort = true

	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	handler.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(log.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
			}).Debug("HTTP request")
			return nil
		},
	}))
	handler.Use(middleware.BodyLimit(maxBodySize))

	ctrl := NewLogController(services.Log, counters, info)

	handler.GET("/", ctrl.Home)
	handler.GET("/health", ctrl.Health)
	handler.GET("/dashboard", ctrl.GetDashboard)

	api := handler.Group("/api")
	api.POST("/logs", ctrl.SendLog)
	api.GET("/stats", ctrl.GetStats)
}
