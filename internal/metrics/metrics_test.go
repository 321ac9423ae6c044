package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveTool(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.ObserveTool("analyze_content", time.Now(), nil)
	m.ObserveTool("analyze_content", time.Now(), errors.New("bad input"))

	body := scrape(t, m)
	assert.Contains(t, body, `styleguide_tool_calls_total{outcome="ok",tool="analyze_content"} 1`)
	assert.Contains(t, body, `styleguide_tool_calls_total{outcome="error",tool="analyze_content"} 1`)
	assert.Contains(t, body, "styleguide_tool_duration_seconds")
}

func TestObserveIssuesAndFetches(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.ObserveIssues(map[string]int{"grammar": 2, "voice": 0})
	m.ObserveFetch("cache_hit")

	body := scrape(t, m)
	assert.Contains(t, body, `styleguide_issues_total{category="grammar"} 2`)
	assert.NotContains(t, body, `category="voice"`)
	assert.Contains(t, body, `styleguide_fetches_total{outcome="cache_hit"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTool("x", time.Now(), nil)
		m.ObserveIssues(map[string]int{"voice": 1})
		m.ObserveFetch("fetched")
	})
}
