package httpv1

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRawEventFromBody decodes an ingestion body. Anything that is not a single
// JSON object, trailing data included, is read as an empty document and fails
// validation downstream.
func NewRawEventFromBody(body io.Reader) domain.RawEvent {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return domain.RawEvent{}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.RawEvent{}
	}
	return domain.RawEvent(raw)
}

func minutesFromQuery(c echo.Context) (int, error) {
	v := strings.TrimSpace(c.QueryParam("minutes"))
	if v == "" {
		return service.DefaultWindowMinutes, nil
	}
	minutes, err := strconv.Atoi(v)
	if err != nil || !domain.ValidWindowMinutes(minutes) {
		return 0, service.ErrInvalidWindow
	}
	return minutes, nil
}

func NewDashboardQueryFromRequest(c echo.Context) (domain.DashboardQuery, error) {
	minutes, err := minutesFromQuery(c)
	if err != nil {
		return domain.DashboardQuery{}, err
	}
	return domain.DashboardQuery{
		Minutes: minutes,
		Level:   c.QueryParam("level"),
		Service: c.QueryParam("service"),
		Q:       c.QueryParam("q"),
	}, nil
}
