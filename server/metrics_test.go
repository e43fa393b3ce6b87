package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/brettbedarf/memfs/filesystem"
	"github.com/brettbedarf/memfs/observers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	prom, err := observers.NewPrometheus(reg)
	require.NoError(t, err)
	m := New(nil, filesystem.WithObserver(prom))
	require.NoError(t, m.Mkdirp("/a/b"))
	require.NoError(t, m.WriteString("/a/f", "x", nil))

	ms, err := ListenMetrics("127.0.0.1:0", reg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, ms.Close(ctx))
	})

	resp, err := http.Get("http://" + ms.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `memfs_operations_total{op="mkdirp"} 1`)
	assert.Contains(t, string(body), `memfs_operations_total{op="writeFile"} 1`)
}

func TestListenMetrics_BadAddr(t *testing.T) {
	t.Parallel()

	_, err := ListenMetrics("not-an-address", prometheus.NewRegistry())
	assert.Error(t, err)
}
