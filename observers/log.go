// Package observers provides memfs.Observer implementations that record
// committed filesystem operations.
package observers

import (
	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/rs/zerolog"
)

// Log writes one entry per committed operation.
type Log struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLog returns a Log observer writing at debug level under component.
func NewLog(component string) *Log {
	return &Log{logger: util.GetLogger(component), level: zerolog.DebugLevel}
}

// NewLogWith returns a Log observer writing to logger at level.
func NewLogWith(logger zerolog.Logger, level zerolog.Level) *Log {
	return &Log{logger: logger, level: level}
}

func (l *Log) Notify(ev memfs.Event) {
	entry := l.logger.WithLevel(l.level).Str("op", string(ev.Op)).Str("path", ev.Path)
	if ev.NewPath != "" {
		entry = entry.Str("new_path", ev.NewPath)
	}
	entry.Msg("Operation committed")
}
