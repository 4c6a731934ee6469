package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hrms_gateway/internal/logger"
)

func TestMetricsObserver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	tr, err := New(ts.URL, WithDomain("leave"), WithObserver(m.Observer()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, tr.Get(ctx, "/ok", nil, nil))
	require.NoError(t, tr.Get(ctx, "/ok", nil, nil))
	assert.Error(t, tr.Get(ctx, "/missing", nil, nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("leave", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("leave", "GET", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "collectors registered twice")
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, zerolog.DebugLevel)
	defer logger.SetOutput(&bytes.Buffer{}, zerolog.InfoLevel)

	obs := LogObserver()
	obs(context.Background(), "audit", "GET", 500, 12*time.Millisecond, assert.AnError)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"domain":"audit"`)
	assert.Contains(t, out, `"status":500`)
}
