// Package config loads the shared pmctl JSON configuration and manages
// tokens stored in the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	appName        = "pmctl"
	keyringService = "pmctl"
	configFileName = "config.json"
	envPrefix      = "PMCTL"

	// EnvConfigPath overrides the default configuration file location.
	EnvConfigPath = "PMCTL_CONFIG"

	// ServiceAsana keys the task-tracking sub-object of the config file.
	ServiceAsana = "asana"
	// ServiceCoda keys the document service sub-object of the config file.
	ServiceCoda = "coda"
)

// ErrNotFound is returned when the configuration file does not exist.
var ErrNotFound = errors.New("config file not found")

// MissingFieldError reports a required key that is absent or empty.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s not set in config file %s", e.Field, e.Path)
}

// Asana is the task-service configuration.
type Asana struct {
	APIToken   string
	Assignee   string
	Workspace  string
	ProjectIDs []string
}

// Coda is the document-service configuration.
type Coda struct {
	APIToken string
}

// ResolvePath picks the config file: an explicit path, then $PMCTL_CONFIG,
// then $XDG_CONFIG_HOME/pmctl/config.json, then ~/.config/pmctl/config.json.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName, configFileName), nil
}

// LoadAsana reads and validates the "asana" section of the file at path.
func LoadAsana(path string) (Asana, error) {
	v, err := read(path)
	if err != nil {
		return Asana{}, err
	}

	token, err := apiToken(v, path, ServiceAsana)
	if err != nil {
		return Asana{}, err
	}

	projects := nonEmpty(v.GetStringSlice(key(ServiceAsana, "project_ids")))
	if len(projects) == 0 {
		return Asana{}, &MissingFieldError{Path: path, Field: key(ServiceAsana, "project_ids")}
	}

	return Asana{
		APIToken:   token,
		ProjectIDs: projects,
		Assignee:   strings.TrimSpace(v.GetString(key(ServiceAsana, "assignee"))),
		Workspace:  strings.TrimSpace(v.GetString(key(ServiceAsana, "workspace"))),
	}, nil
}

// LoadCoda reads and validates the "coda" section of the file at path.
func LoadCoda(path string) (Coda, error) {
	v, err := read(path)
	if err != nil {
		return Coda{}, err
	}
	token, err := apiToken(v, path, ServiceCoda)
	if err != nil {
		return Coda{}, err
	}
	return Coda{APIToken: token}, nil
}

// SaveToken stores a service token in the OS keyring. It is consulted when
// the config file has no api_token.
func SaveToken(service, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if service == "" {
		return errors.New("service name cannot be empty")
	}
	if err := keyring.Set(keyringService, service, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// DeleteToken removes a stored service token. A missing token is not an error.
func DeleteToken(service string) error {
	if service == "" {
		return errors.New("service name cannot be empty")
	}
	if err := keyring.Delete(keyringService, service); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func read(path string) (*viper.Viper, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, nil
}

func apiToken(v *viper.Viper, path, service string) (string, error) {
	if token := strings.TrimSpace(v.GetString(key(service, "api_token"))); token != "" {
		return token, nil
	}

	token, err := keyring.Get(keyringService, service)
	switch {
	case err == nil && strings.TrimSpace(token) != "":
		return strings.TrimSpace(token), nil
	case err == nil, errors.Is(err, keyring.ErrNotFound):
		return "", &MissingFieldError{Path: path, Field: key(service, "api_token")}
	default:
		return "", fmt.Errorf("load token from keyring: %w", err)
	}
}

func key(service, field string) string {
	return service + "." + field
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
