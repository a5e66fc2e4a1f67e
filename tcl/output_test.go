package tcl

import (
	"bytes"
	"testing"
)

func TestDecodeScript(t *testing.T) {
	got, err := DecodeScript([]byte("puts caf\xe9"), "latin1")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != "puts café" {
		t.Fatalf("unexpected decode: %q", got)
	}

	got, err = DecodeScript([]byte("puts café"), "")
	if err != nil || got != "puts café" {
		t.Fatalf("expected passthrough, got %q %v", got, err)
	}

	if _, err := DecodeScript([]byte("x"), "no-such-charset"); err == nil {
		t.Fatalf("expected unknown encoding error")
	}
}

func TestEncodedWriterReplacesUnsupported(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewEncodedWriter(&buf, "windows-1252")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	n, err := w.Write([]byte("é→"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n != len("é→") {
		t.Fatalf("expected full length reported, got %d", n)
	}
	if got := buf.Bytes(); len(got) != 2 || got[0] != 0xe9 {
		t.Fatalf("unexpected encoded bytes: %x", got)
	}
}

func TestEncodedWriterUTF8Passthrough(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewEncodedWriter(&buf, "utf-8")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if w != &buf {
		t.Fatalf("expected utf-8 to return the underlying writer")
	}
}
