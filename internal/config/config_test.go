package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/yourorg/pmctl/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAsana(t *testing.T) {
	keyring.MockInit()

	path := writeConfig(t, `{
		"asana": {
			"api_token": "asana-secret",
			"project_ids": ["111", "222"],
			"assignee": "me"
		},
		"coda": {"api_token": "coda-secret"}
	}`)

	cfg, err := config.LoadAsana(path)
	if err != nil {
		t.Fatalf("LoadAsana returned error: %v", err)
	}
	if cfg.APIToken != "asana-secret" {
		t.Fatalf("APIToken = %q", cfg.APIToken)
	}
	if want := []string{"111", "222"}; !reflect.DeepEqual(cfg.ProjectIDs, want) {
		t.Fatalf("ProjectIDs = %v, want %v", cfg.ProjectIDs, want)
	}
	if cfg.Assignee != "me" {
		t.Fatalf("Assignee = %q", cfg.Assignee)
	}
}

func TestLoadAsanaRequiresProjects(t *testing.T) {
	keyring.MockInit()

	path := writeConfig(t, `{"asana": {"api_token": "tok"}}`)

	_, err := config.LoadAsana(path)
	var missing *config.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "asana.project_ids" {
		t.Fatalf("Field = %q", missing.Field)
	}
}

func TestLoadCodaMissingToken(t *testing.T) {
	keyring.MockInit()

	path := writeConfig(t, `{"coda": {}}`)

	_, err := config.LoadCoda(path)
	var missing *config.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "coda.api_token" {
		t.Fatalf("Field = %q", missing.Field)
	}
}

func TestLoadCodaFallsBackToKeyring(t *testing.T) {
	keyring.MockInit()

	if err := config.SaveToken(config.ServiceCoda, "from-keyring"); err != nil {
		t.Fatalf("SaveToken returned error: %v", err)
	}
	path := writeConfig(t, `{"coda": {}}`)

	cfg, err := config.LoadCoda(path)
	if err != nil {
		t.Fatalf("LoadCoda returned error: %v", err)
	}
	if cfg.APIToken != "from-keyring" {
		t.Fatalf("APIToken = %q", cfg.APIToken)
	}

	if err := config.DeleteToken(config.ServiceCoda); err != nil {
		t.Fatalf("DeleteToken returned error: %v", err)
	}
	if _, err := config.LoadCoda(path); err == nil {
		t.Fatalf("expected error after token deletion")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	keyring.MockInit()
	t.Setenv("PMCTL_CODA_API_TOKEN", "from-env")

	path := writeConfig(t, `{"coda": {"api_token": "from-file"}}`)

	cfg, err := config.LoadCoda(path)
	if err != nil {
		t.Fatalf("LoadCoda returned error: %v", err)
	}
	if cfg.APIToken != "from-env" {
		t.Fatalf("APIToken = %q, want env override", cfg.APIToken)
	}
}

func TestLoadMissingFile(t *testing.T) {
	keyring.MockInit()

	_, err := config.LoadCoda(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, config.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	got, err := config.ResolvePath("")
	if err != nil {
		t.Fatalf("ResolvePath returned error: %v", err)
	}
	if want := filepath.Join("/xdg", "pmctl", "config.json"); got != want {
		t.Fatalf("ResolvePath = %q, want %q", got, want)
	}

	t.Setenv(config.EnvConfigPath, "/etc/pmctl.json")
	if got, _ := config.ResolvePath(""); got != "/etc/pmctl.json" {
		t.Fatalf("ResolvePath with env = %q", got)
	}
	if got, _ := config.ResolvePath("/explicit.json"); got != "/explicit.json" {
		t.Fatalf("ResolvePath explicit = %q", got)
	}
}

func TestSaveTokenValidation(t *testing.T) {
	keyring.MockInit()

	if err := config.SaveToken("", "token"); err == nil {
		t.Fatalf("SaveToken with empty service expected error")
	}
	if err := config.SaveToken(config.ServiceAsana, "   "); err == nil {
		t.Fatalf("SaveToken with empty token expected error")
	}
}
