package loggen

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Next(t *testing.T) {
	g := NewGenerator(1)
	g.now = func() time.Time { return time.Date(2026, 1, 2, 12, 34, 56, 0, time.UTC) }

	counts := map[domain.Level]int{}
	const n = 5000
	for i := 0; i < n; i++ {
		p := g.Next()
		counts[p.Level]++

		assert.Equal(t, "2026-01-02T12:34:56Z", p.Timestamp)
		assert.Contains(t, Services, p.Service)
		assert.Contains(t, messages[p.Level], p.Message)
		assert.GreaterOrEqual(t, p.Metadata["request_id"], 1000)
		assert.Less(t, p.Metadata["request_id"], 10000)
	}

	assert.InDelta(t, 0.7, float64(counts[domain.LevelInfo])/n, 0.05)
	assert.InDelta(t, 0.2, float64(counts[domain.LevelWarn])/n, 0.05)
	assert.InDelta(t, 0.1, float64(counts[domain.LevelError])/n, 0.05)
}

func TestGenerator_PayloadsPassValidation(t *testing.T) {
	g := NewGenerator(7)
	for i := 0; i < 100; i++ {
		b, err := json.Marshal(g.Next())
		require.NoError(t, err)

		var raw domain.RawEvent
		require.NoError(t, json.Unmarshal(b, &raw))

		_, err = validators.Validate(raw, time.Now())
		assert.NoError(t, err)
	}
}

func newIngestServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p Payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))

		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestRun(t *testing.T) {
	srv, hits := newIngestServer(t, http.StatusCreated)

	sent, err := Run(context.Background(), NewGenerator(3), NewSender(srv.URL, time.Second), 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, sent)
	assert.Equal(t, int32(5), hits.Load())
}

func TestRun_StopsOnRejection(t *testing.T) {
	srv, hits := newIngestServer(t, http.StatusBadRequest)

	sent, err := Run(context.Background(), NewGenerator(3), NewSender(srv.URL, time.Second), 5, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 400")
	assert.Equal(t, 0, sent)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRun_Cancelled(t *testing.T) {
	srv, _ := newIngestServer(t, http.StatusCreated)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, err := Run(ctx, NewGenerator(3), NewSender(srv.URL, time.Second), 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sent)
}

func TestSendCmd(t *testing.T) {
	srv, hits := newIngestServer(t, http.StatusCreated)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"send", "--url", srv.URL, "--count", "3", "--delay", "0s"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, int32(3), hits.Load())
	assert.Contains(t, out.String(), "Sent 3 logs to "+srv.URL)
}
