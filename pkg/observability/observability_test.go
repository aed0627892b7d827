package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Format: "json", Output: &buf})
	logger.Info("hidden")
	logger.Warn("shown", slog.String("kind", "unavailable"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "unavailable", line["kind"])
	assert.Same(t, logger, slog.Default())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("creditrisk")
	m.AssessmentCompleted(1, 3*time.Millisecond)
	m.AssessmentCompleted(1, time.Millisecond)
	m.AssessmentCompleted(0, time.Millisecond)
	m.AssessmentFailed("invalid_input")
	m.ObserveRequest(http.MethodPost, "/api/v1/assessments", http.StatusCreated, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.assessments.WithLabelValues("good")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assessments.WithLabelValues("bad")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("invalid_input")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `creditrisk_assessments_total{class="good"} 2`)
	assert.Contains(t, string(body), `creditrisk_http_request_duration_seconds_count{method="POST",route="/api/v1/assessments",status="201"} 1`)
}
