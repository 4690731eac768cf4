package httpv1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawEventFromBody(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want domain.RawEvent
	}{
		{
			name: "object",
			body: `{"level":"INFO","metadata":{"n":12}}`,
			want: domain.RawEvent{"level": "INFO", "metadata": map[string]any{"n": json.Number("12")}},
		},
		{name: "array", body: `[1,2]`, want: domain.RawEvent{}},
		{name: "null", body: `null`, want: domain.RawEvent{}},
		{name: "truncated", body: `{"level"`, want: domain.RawEvent{}},
		{name: "empty", body: ``, want: domain.RawEvent{}},
		{name: "trailing whitespace", body: "{\"level\":\"INFO\"}\n\t ", want: domain.RawEvent{"level": "INFO"}},
		{name: "trailing garbage", body: `{"level":"INFO","service":"a","message":"m"} not json`, want: domain.RawEvent{}},
		{name: "second object", body: `{"level":"INFO"}{"level":"WARN"}`, want: domain.RawEvent{}},
		{name: "stray closing brace", body: `{"level":"INFO"}}`, want: domain.RawEvent{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewRawEventFromBody(strings.NewReader(tc.body)))
		})
	}
}

func TestNewDashboardQueryFromRequest(t *testing.T) {
	testCases := []struct {
		query   string
		want    domain.DashboardQuery
		wantErr error
	}{
		{query: "", want: domain.DashboardQuery{Minutes: service.DefaultWindowMinutes}},
		{query: "minutes=%2015%20&level=info", want: domain.DashboardQuery{Minutes: 15, Level: "info"}},
		{query: "service=pay&q=time", want: domain.DashboardQuery{Minutes: 60, Service: "pay", Q: "time"}},
		{query: "minutes=1.5", wantErr: service.ErrInvalidWindow},
		{query: "minutes=-3", wantErr: service.ErrInvalidWindow},
	}

	e := echo.New()
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard?"+tc.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())

			got, err := NewDashboardQueryFromRequest(c)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
