package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordsExtracted.Add(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.RecordsExtracted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RecordsExtracted))

	a.RecordsDropped.WithLabelValues("parse_angle").Inc()
	count, err := testutil.GatherAndCount(a.Registry, "race_etl_records_dropped_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Push(t *testing.T) {
	var gotPath string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		gotBody = buf.String()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMetrics()
	m.LastRecordCount.Set(31)
	require.NoError(t, m.Push(srv.URL, "race_positions"))

	assert.Equal(t, "/metrics/job/race_positions", gotPath)
	assert.Contains(t, gotBody, "race_etl_last_record_count")
}

func TestMetrics_PushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewMetrics().Push(srv.URL, "race_positions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push metrics")
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "info", "json").Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])

	buf.Reset()
	newLogger(&buf, "info", "TEXT").Info("hello")
	assert.True(t, strings.Contains(buf.String(), "msg=hello"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
