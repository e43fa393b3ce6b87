package observers

import (
	"github.com/brettbedarf/memfs"
	"github.com/puzpuzpuz/xsync/v4"
)

// Counter tallies committed operations per op name. It is safe to read
// from other goroutines while the filesystem is in use.
type Counter struct {
	counts *xsync.Map[memfs.Op, *xsync.Counter]
}

func NewCounter() *Counter {
	return &Counter{counts: xsync.NewMap[memfs.Op, *xsync.Counter]()}
}

func (c *Counter) Notify(ev memfs.Event) {
	cnt, ok := c.counts.Load(ev.Op)
	if !ok {
		cnt, _ = c.counts.LoadOrStore(ev.Op, xsync.NewCounter())
	}
	cnt.Inc()
}

// Count returns how many times op has committed.
func (c *Counter) Count(op memfs.Op) int64 {
	cnt, ok := c.counts.Load(op)
	if !ok {
		return 0
	}
	return cnt.Value()
}

// Snapshot copies the current counts.
func (c *Counter) Snapshot() map[memfs.Op]int64 {
	out := make(map[memfs.Op]int64, c.counts.Size())
	c.counts.Range(func(op memfs.Op, cnt *xsync.Counter) bool {
		out[op] = cnt.Value()
		return true
	})
	return out
}

// Reset zeroes every count.
func (c *Counter) Reset() {
	c.counts.Range(func(_ memfs.Op, cnt *xsync.Counter) bool {
		cnt.Reset()
		return true
	})
}
