package config

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.MirrorPath == "" || cfg.CredentialPath == "" {
		t.Fatalf("expected data paths, got %+v", cfg)
	}
	if cfg.ReminderBuffer != 64 {
		t.Fatalf("ReminderBuffer = %d", cfg.ReminderBuffer)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("SMARTTODO_API_URL", "https://api.example.com/v1")
	t.Setenv("SMARTTODO_MIRROR_PATH", "state/mirror.db")
	t.Setenv("SMARTTODO_USER_NAME", "Sam")
	t.Setenv("SMARTTODO_MUTED", "yes")
	t.Setenv("SMARTTODO_DESKTOP_NOTIFICATIONS", "off")
	t.Setenv("SMARTTODO_REMINDER_BUFFER", "128")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.APIBaseURL != "https://api.example.com/v1" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.MirrorPath != "state/mirror.db" {
		t.Fatalf("MirrorPath = %q", cfg.MirrorPath)
	}
	if cfg.UserName != "Sam" {
		t.Fatalf("UserName = %q", cfg.UserName)
	}
	if !cfg.Muted || cfg.DesktopNotifications {
		t.Fatalf("bool overrides not applied: %+v", cfg)
	}
	if cfg.ReminderBuffer != 128 {
		t.Fatalf("ReminderBuffer = %d", cfg.ReminderBuffer)
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("SMARTTODO_REMINDER_BUFFER", "not-a-number")
	t.Setenv("SMARTTODO_MUTED", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.ReminderBuffer != 64 || cfg.Muted {
		t.Fatalf("invalid values should keep defaults: %+v", cfg)
	}
}
