package observers

import "github.com/brettbedarf/memfs"

type multi []memfs.Observer

// Multi fans each event out to every non-nil observer in order.
func Multi(obs ...memfs.Observer) memfs.Observer {
	m := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multi) Notify(ev memfs.Event) {
	for _, o := range m {
		o.Notify(ev)
	}
}
