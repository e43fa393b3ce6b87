package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		encoding string
		text     string
		bytes    []byte
	}{
		{"utf8", "hello", []byte("hello")},
		{"UTF-8", "héllo", []byte("h\xc3\xa9llo")},
		{"utf16le", "hi", []byte{'h', 0, 'i', 0}},
		{"ucs2", "hi", []byte{'h', 0, 'i', 0}},
		{"utf16be", "hi", []byte{0, 'h', 0, 'i'}},
		{"latin1", "é", []byte{0xe9}},
		{"hex", "68656c6c6f", []byte("hello")},
		{"base64", "aGVsbG8=", []byte("hello")},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			t.Parallel()

			encoded, err := Default.Encode(tt.text, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.bytes, encoded)

			decoded, err := Default.Decode(encoded, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.text, decoded)
		})
	}
}

func TestText_UnknownEncodingFallsBack(t *testing.T) {
	t.Parallel()

	encoded, err := Default.Encode("abc", "string")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), encoded)

	decoded, err := Default.Decode([]byte("abc"), "")
	require.NoError(t, err)
	assert.Equal(t, "abc", decoded)
}

func TestNew_Fallback(t *testing.T) {
	t.Parallel()

	c := New(nil, "utf16le")
	encoded, err := c.Encode("a", "nope")
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0}, encoded)

	// unknown fallback name degrades to utf8
	c = New(nil, "nope")
	encoded, err = c.Encode("a", "nope")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), encoded)
}

func TestText_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Default.Encode("zz", "hex")
	assert.Error(t, err)

	_, err = Default.Encode("***", "base64")
	assert.Error(t, err)
}

func TestText_InvalidUTF8DecodesWithReplacement(t *testing.T) {
	t.Parallel()

	decoded, err := Default.Decode([]byte{'a', 0xff, 'b'}, "utf8")
	require.NoError(t, err)
	assert.Equal(t, "a�b", decoded)
}
