// Package codec converts text to and from the byte content of files.
//
// Encodings are looked up by name in a [Registry]. Names are case
// insensitive; a codec asked for a name it does not know falls back to its
// default encoding instead of failing.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding converts between text and bytes for one named encoding.
type Encoding interface {
	Encode(text string) ([]byte, error)
	Decode(data []byte) (string, error)
}

// textEncoding adapts an x/text character encoding.
type textEncoding struct {
	enc encoding.Encoding
}

func (t textEncoding) Encode(text string) ([]byte, error) {
	return encoding.ReplaceUnsupported(t.enc.NewEncoder()).Bytes([]byte(text))
}

func (t textEncoding) Decode(data []byte) (string, error) {
	out, err := t.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// hexEncoding treats text as hex digits; the bytes are what they spell.
type hexEncoding struct{}

func (hexEncoding) Encode(text string) ([]byte, error) {
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid hex text: %w", err)
	}
	return b, nil
}

func (hexEncoding) Decode(data []byte) (string, error) {
	return hex.EncodeToString(data), nil
}

// base64Encoding treats text as standard padded base64.
type base64Encoding struct{}

func (base64Encoding) Encode(text string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 text: %w", err)
	}
	return b, nil
}

func (base64Encoding) Decode(data []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(data), nil
}

var (
	UTF8    Encoding = textEncoding{unicode.UTF8}
	UTF16LE Encoding = textEncoding{unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	UTF16BE Encoding = textEncoding{unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
	Latin1  Encoding = textEncoding{charmap.ISO8859_1}
	Hex     Encoding = hexEncoding{}
	Base64  Encoding = base64Encoding{}
)
