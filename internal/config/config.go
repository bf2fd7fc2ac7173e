// Package config holds runtime settings sourced from the environment.
// A .env file in the working directory is loaded by the cmd layer
// before these lookups run.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	APIBaseURL           string
	MirrorPath           string
	CredentialPath       string
	UserName             string
	Muted                bool
	DesktopNotifications bool
	ReminderBuffer       int
}

func DefaultRuntimeConfig() RuntimeConfig {
	dataDir := defaultDataDir()
	return RuntimeConfig{
		APIBaseURL:           "http://localhost:5000/api",
		MirrorPath:           filepath.Join(dataDir, "mirror.db"),
		CredentialPath:       filepath.Join(dataDir, "credentials.json"),
		UserName:             "there",
		Muted:                false,
		DesktopNotifications: true,
		ReminderBuffer:       64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("SMARTTODO_API_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SMARTTODO_MIRROR_PATH")); v != "" {
		cfg.MirrorPath = v
	}
	if v := strings.TrimSpace(os.Getenv("SMARTTODO_CREDENTIAL_PATH")); v != "" {
		cfg.CredentialPath = v
	}
	if v := strings.TrimSpace(os.Getenv("SMARTTODO_USER_NAME")); v != "" {
		cfg.UserName = v
	}
	if v, ok := getEnvBool("SMARTTODO_MUTED"); ok {
		cfg.Muted = v
	}
	if v, ok := getEnvBool("SMARTTODO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("SMARTTODO_REMINDER_BUFFER"); ok && v > 0 {
		cfg.ReminderBuffer = v
	}
	return cfg
}

func defaultDataDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "smarttodo")
	}
	return ".smarttodo"
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
