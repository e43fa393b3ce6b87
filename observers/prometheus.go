package observers

import (
	"github.com/brettbedarf/memfs"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exports committed operations as memfs_operations_total{op}.
type Prometheus struct {
	ops *prometheus.CounterVec
}

// NewPrometheus creates the collector and registers it with reg, or with
// the default registerer when reg is nil.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "memfs",
			Name:      "operations_total",
			Help:      "Total filesystem operations committed",
		}, []string{"op"}),
	}
	if err := reg.Register(p.ops); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prometheus) Notify(ev memfs.Event) {
	p.ops.WithLabelValues(string(ev.Op)).Inc()
}
