package httpv1

import (
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogOps/internal/controller/common/logging"
	"github.com/Egor213/LogOps/internal/metrics"
	"github.com/Egor213/LogOps/internal/service"
	"github.com/Egor213/LogOps/internal/validators"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	routeIngest    = "ingest"
	routeStats     = "stats"
	routeDashboard = "dashboard"
	routeHealth    = "health"

	statusOK       = "ok"
	statusRejected = "rejected"
	statusFailed   = "failed"
)

type LogController struct {
	logService service.Log
	counters   *metrics.Counters
	info       AppInfo
}

func NewLogController(ls service.Log, cnt *metrics.Counters, info AppInfo) *LogController {
	return &LogController{
		logService: ls,
		counters:   cnt,
		info:       info,
	}
}

func (c *LogController) Home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, homeResponse{
		Name:    c.info.Name,
		Version: c.info.Version,
		Endpoints: map[string]string{
			"dashboard": "/dashboard",
			"ingest":    "/api/logs",
			"stats":     "/api/stats",
			"health":    "/health",
		},
	})
}

func (c *LogController) SendLog(ctx echo.Context) error {
	raw := NewRawEventFromBody(ctx.Request().Body)
	logginghelper.LogReceived(raw)

	logEvent, err := c.logService.Ingest(ctx.Request().Context(), raw)
	if err != nil {
		if ve, ok := validators.AsValidationError(err); ok {
			c.counters.HttpRequests.Inc(routeIngest, statusRejected)
			logginghelper.LogRejected(raw, ve)
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error()})
		}
		c.counters.HttpRequests.Inc(routeIngest, statusFailed)
		logginghelper.LogError(raw, err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to store log"})
	}

	logginghelper.LogSaved(logEvent)
	c.counters.HttpRequests.Inc(routeIngest, statusOK)

	return ctx.JSON(http.StatusCreated, ingestResponse{
		Status: "ingested",
		ID:     logEvent.ID,
	})
}

func (c *LogController) GetStats(ctx echo.Context) error {
	minutes, err := minutesFromQuery(ctx)
	if err != nil {
		c.counters.HttpRequests.Inc(routeStats, statusRejected)
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	stats, err := c.logService.GetStats(ctx.Request().Context(), minutes)
	if err != nil {
		return c.queryFailed(ctx, routeStats, err)
	}

	c.counters.HttpRequests.Inc(routeStats, statusOK)
	return ctx.JSON(http.StatusOK, newStatsResponse(stats))
}

func (c *LogController) GetDashboard(ctx echo.Context) error {
	q, err := NewDashboardQueryFromRequest(ctx)
	if err != nil {
		c.counters.HttpRequests.Inc(routeDashboard, statusRejected)
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	dashboard, err := c.logService.GetDashboard(ctx.Request().Context(), q)
	if err != nil {
		return c.queryFailed(ctx, routeDashboard, err)
	}

	c.counters.HttpRequests.Inc(routeDashboard, statusOK)
	return ctx.JSON(http.StatusOK, newDashboardResponse(dashboard, c.info.Version))
}

func (c *LogController) Health(ctx echo.Context) error {
	if err := c.logService.Health(ctx.Request().Context()); err != nil {
		c.counters.HttpRequests.Inc(routeHealth, statusFailed)
		log.WithField("error", err).Warn("Health check failed")
		return ctx.JSON(http.StatusInternalServerError, healthResponse{
			Status: "degraded",
			Error:  err.Error(),
		})
	}
	c.counters.HttpRequests.Inc(routeHealth, statusOK)
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func (c *LogController) queryFailed(ctx echo.Context, route string, err error) error {
	if errors.Is(err, service.ErrInvalidWindow) {
		c.counters.HttpRequests.Inc(route, statusRejected)
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	c.counters.HttpRequests.Inc(route, statusFailed)
	log.WithFields(log.Fields{
		"route": route,
		"error": err,
	}).Error("Query failed")
	return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to query logs"})
}
