package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if !cfg.LogEnabled {
		t.Error("LogEnabled = false, want true by default")
	}
	if cfg.ExportFormat != "xlsx" {
		t.Errorf("ExportFormat = %q, want xlsx", cfg.ExportFormat)
	}
	if cfg.StorageType != "local" {
		t.Errorf("StorageType = %q, want local", cfg.StorageType)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("LOG_ENABLED", "false")
	t.Setenv("MAX_DISPATCH", "4")
	t.Setenv("RETAIN_SUCCESS_ROWS", "true")

	cfg := Load()

	if cfg.DBDriver != "mysql" {
		t.Errorf("DBDriver = %q, want mysql", cfg.DBDriver)
	}
	if cfg.LogEnabled {
		t.Error("LogEnabled = true, want false")
	}
	if cfg.MaxDispatch != 4 {
		t.Errorf("MaxDispatch = %d, want 4", cfg.MaxDispatch)
	}
	if !cfg.RetainSuccessRows {
		t.Error("RetainSuccessRows = false, want true")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_DISPATCH", "many")
	t.Setenv("LOG_ENABLED", "yep")

	cfg := Load()

	if cfg.MaxDispatch != 0 {
		t.Errorf("MaxDispatch = %d, want fallback 0", cfg.MaxDispatch)
	}
	if !cfg.LogEnabled {
		t.Error("LogEnabled should fall back to true on malformed input")
	}
}
