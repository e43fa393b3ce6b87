package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/brettbedarf/memfs/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes a Prometheus registry at /metrics.
type MetricsServer struct {
	srv *http.Server
	ln  net.Listener
}

// ListenMetrics starts serving g on addr in the background. Use ":0" to
// pick a free port and Addr to find it.
func ListenMetrics(addr string, g prometheus.Gatherer) (*MetricsServer, error) {
	logger := util.GetLogger("Metrics")

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	m := &MetricsServer{
		srv: &http.Server{Handler: mux, ErrorLog: util.NewLogLogger("MetricsHTTP", util.WarnLevel)},
		ln:  ln,
	}

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
	logger.Info().Str("addr", m.Addr()).Msg("Serving metrics")
	return m, nil
}

// Addr returns the address the server is listening on.
func (m *MetricsServer) Addr() string {
	return m.ln.Addr().String()
}

// Close stops the server, waiting for in-flight scrapes until ctx is done.
func (m *MetricsServer) Close(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
