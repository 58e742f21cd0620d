package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no debug output without verbose, got %q", buf.String())
	}

	New(&buf, true).Debug("shown", "k", "v")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug output with verbose, got %q", buf.String())
	}
}

func TestErrAttr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError || attr.Value.String() != "boom" {
		t.Fatalf("Err attr = %v", attr)
	}
	if empty := Err(nil); empty.Key != "" {
		t.Fatalf("Err(nil) key = %q, want empty", empty.Key)
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken(""); got != "<empty>" {
		t.Fatalf("SanitizeToken(\"\") = %q", got)
	}
	got := SanitizeToken("secret-value")
	if strings.Contains(got, "secret") {
		t.Fatalf("SanitizeToken leaked token: %q", got)
	}
	if got != "[token:12 chars]" {
		t.Fatalf("SanitizeToken = %q", got)
	}
}

func TestWithServiceNilLogger(t *testing.T) {
	if WithService(nil, "coda") == nil {
		t.Fatal("WithService(nil) returned nil")
	}
	if WithOperation(nil, "list") == nil {
		t.Fatal("WithOperation(nil) returned nil")
	}
}
