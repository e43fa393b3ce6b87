package util

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologWriter_StripsStdlogPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := zerologWriter{logger: zerolog.New(&buf), level: zerolog.WarnLevel}

	n, err := w.Write([]byte("2024/01/01 00:00:00 fuse: writer: unmount failed\n"))
	require.NoError(t, err)
	assert.Equal(t, len("2024/01/01 00:00:00 fuse: writer: unmount failed\n"), n)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "unmount failed", entry["message"])
	assert.Equal(t, "warn", entry["level"])
}

func TestZerologLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.TraceLevel, zerologLevel(TraceLevel))
	assert.Equal(t, zerolog.ErrorLevel, zerologLevel(ErrorLevel))
	assert.Equal(t, zerolog.InfoLevel, zerologLevel(42), "unknown levels default to info")
}

func TestPointer(t *testing.T) {
	t.Parallel()

	p := Pointer(7)
	require.NotNil(t, p)
	assert.Equal(t, 7, *p)
}
