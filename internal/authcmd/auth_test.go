package authcmd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/yourorg/pmctl/internal/authcmd"
	"github.com/yourorg/pmctl/internal/config"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := authcmd.New(config.ServiceCoda, "Coda", authcmd.DefaultKeyring)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginStoresToken(t *testing.T) {
	keyring.MockInit()

	out, err := run(t, "", "login", "--token", "tok-123")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if !strings.Contains(out, "Saved Coda token") {
		t.Fatalf("unexpected output %q", out)
	}

	got, err := keyring.Get("pmctl", config.ServiceCoda)
	if err != nil || got != "tok-123" {
		t.Fatalf("keyring = %q, %v", got, err)
	}
}

func TestLoginReadsPipedToken(t *testing.T) {
	keyring.MockInit()

	if _, err := run(t, "piped-token\n", "login"); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	got, err := keyring.Get("pmctl", config.ServiceCoda)
	if err != nil || got != "piped-token" {
		t.Fatalf("keyring = %q, %v", got, err)
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	keyring.MockInit()

	if _, err := run(t, "   ", "login"); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestLogoutRemovesToken(t *testing.T) {
	keyring.MockInit()

	if err := keyring.Set("pmctl", config.ServiceCoda, "tok"); err != nil {
		t.Fatalf("seed keyring: %v", err)
	}
	if _, err := run(t, "", "logout"); err != nil {
		t.Fatalf("logout returned error: %v", err)
	}
	if _, err := keyring.Get("pmctl", config.ServiceCoda); err == nil {
		t.Fatalf("token still present after logout")
	}
	if _, err := run(t, "", "logout"); err != nil {
		t.Fatalf("second logout returned error: %v", err)
	}
}
