package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCollector(t *testing.T) {
	p := New()
	c, err := NewClientCollector(p.Registry())
	require.NoError(t, err)

	c.ObserveRequest("POST", "success", 200, 120*time.Millisecond)
	c.ObserveRequest("POST", "success", 200, 80*time.Millisecond)
	c.ObserveRequest("GET", "transport", 0, 10*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "success", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "transport", "0")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))

	expected := `
# HELP avatax_client_requests_total API requests by method, outcome and HTTP status.
# TYPE avatax_client_requests_total counter
avatax_client_requests_total{method="GET",outcome="transport",status="0"} 1
avatax_client_requests_total{method="POST",outcome="success",status="200"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(p.Registry(), strings.NewReader(expected), "avatax_client_requests_total"))
}

func TestClientCollector_DuplicateRegistration(t *testing.T) {
	p := New()
	_, err := NewClientCollector(p.Registry())
	require.NoError(t, err)

	_, err = NewClientCollector(p.Registry())
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	p := New()
	p.WithBuildInfoCollector()
	c, err := NewClientCollector(p.Registry())
	require.NoError(t, err)
	c.ObserveRequest("GET", "empty_response", 204, time.Millisecond)

	path := filepath.Join(t.TempDir(), "avatax.prom")
	require.NoError(t, p.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `avatax_client_requests_total{method="GET",outcome="empty_response",status="204"} 1`)
	assert.Contains(t, string(data), "go_build_info")
}
