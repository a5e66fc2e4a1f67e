package tcl

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// lookupEncoding resolves a WHATWG encoding label. Empty and UTF-8 labels
// return nil, meaning no transcoding.
func lookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("tcl: unknown encoding %q: %w", label, err)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// NewEncodedWriter wraps w so text written to it is transcoded from UTF-8 to
// the named encoding. Characters the encoding cannot represent are replaced.
func NewEncodedWriter(w io.Writer, label string) (io.Writer, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return w, nil
	}
	return &encodedWriter{w: w, enc: encoding.ReplaceUnsupported(enc.NewEncoder())}, nil
}

// encodedWriter transcodes each Write on its own. puts always writes whole
// strings, so no multi-byte sequence is split across calls.
type encodedWriter struct {
	w   io.Writer
	enc *encoding.Encoder
}

func (ew *encodedWriter) Write(p []byte) (int, error) {
	out, err := ew.enc.Bytes(p)
	if err != nil {
		return 0, err
	}
	if _, err := ew.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// DecodeScript converts script bytes in the named encoding to a UTF-8
// string.
func DecodeScript(data []byte, label string) (string, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("tcl: decode %s: %w", label, err)
	}
	return string(out), nil
}
