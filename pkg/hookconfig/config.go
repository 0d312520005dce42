// Package hookconfig resolves the webhook service settings from the
// system config file, the user config file, and the process environment,
// in that order of increasing priority.
package hookconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Recognized configuration keys. Anything else found in a file or the
// environment is ignored.
const (
	KeyUser   = "WH_USER"
	KeyPasswd = "WH_PASSWD"
	KeyOBS    = "OBS"
	KeyURL    = "WEBHOOK_URL"
	KeyDebug  = "DEBUG"
)

// systemPath is where the build service installs the site-wide settings.
const systemPath = "/etc/obs/services/webhook"

var requiredKeys = []string{KeyUser, KeyPasswd, KeyOBS, KeyURL}

var recognizedKeys = []string{KeyUser, KeyPasswd, KeyOBS, KeyURL, KeyDebug}

// Settings holds the resolved webhook service configuration. All string
// fields are guaranteed non-empty by Resolve.
type Settings struct {
	BaseURL  string
	Username string
	Password string
	OBS      string
	Debug    bool
}

// MissingKeysError reports every required configuration key left unset
// after all sources are merged.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Keys, ", "))
}

// Resolve merges the given configuration files (earlier paths are lower
// priority, missing files are skipped) and then the environment into a
// Settings value. lookupEnv is os.LookupEnv in production; tests pass
// their own.
func Resolve(paths []string, lookupEnv func(string) (string, bool)) (Settings, error) {
	values, err := loadFiles(paths)
	if err != nil {
		return Settings{}, err
	}

	// Environment wins over every file.
	for _, key := range recognizedKeys {
		if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			values[key] = strings.TrimSpace(v)
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Settings{}, &MissingKeysError{Keys: missing}
	}

	return Settings{
		BaseURL:  values[KeyURL],
		Username: values[KeyUser],
		Password: values[KeyPasswd],
		OBS:      values[KeyOBS],
		Debug:    parseBool(values[KeyDebug]),
	}, nil
}

// loadFiles reads every existing path as a section-less key=value file.
// Later files override earlier ones for the same key.
func loadFiles(paths []string) (map[string]string, error) {
	values := make(map[string]string)
	if len(paths) == 0 {
		return values, nil
	}

	others := make([]interface{}, 0, len(paths)-1)
	for _, p := range paths[1:] {
		others = append(others, p)
	}

	// LooseLoad silently skips files that do not exist; a present but
	// unreadable file is still an error.
	cfg, err := ini.LooseLoad(paths[0], others...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration files: %w", err)
	}

	section := cfg.Section("")
	for _, key := range recognizedKeys {
		if section.HasKey(key) {
			values[key] = strings.TrimSpace(section.Key(key).String())
		}
	}
	return values, nil
}

// DefaultPaths returns the configuration files consulted by default, in
// increasing priority order.
func DefaultPaths() []string {
	paths := []string{systemPath}
	if user, err := UserPath(); err == nil {
		paths = append(paths, user)
	}
	return paths
}

// UserPath returns the per-user configuration file location.
func UserPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".obs", "webhook"), nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
