package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yourorg/pmctl/internal/prompt"
)

func TestSecretFromPipe(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt.Secret(strings.NewReader("  secret-token\n"), &out, "Coda token")
	if err != nil {
		t.Fatalf("Secret returned error: %v", err)
	}
	if got != "secret-token" {
		t.Fatalf("Secret = %q", got)
	}
	if out.Len() != 0 {
		t.Fatalf("non-terminal input should not print a prompt, got %q", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "", want: false},
		{input: "yes", want: true},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		got, err := prompt.Confirm(strings.NewReader(tc.input), &out, "Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if out.String() != "Proceed? [y/N]: " {
			t.Fatalf("prompt = %q", out.String())
		}
	}
}
