package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DocumentPath != "gastos_pessoais.json" {
		t.Errorf("DocumentPath = %q", cfg.DocumentPath)
	}
	if cfg.BackupDir != "backups" {
		t.Errorf("BackupDir = %q", cfg.BackupDir)
	}
	if cfg.DataBackend != "jsonfile" {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.UndoDepth != 10 {
		t.Errorf("UndoDepth = %d", cfg.UndoDepth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GASTOS_FILE", "/tmp/ledger.json")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("GASTOS_UNDO_DEPTH", "5")

	cfg := Load()
	if cfg.DocumentPath != "/tmp/ledger.json" {
		t.Errorf("DocumentPath = %q", cfg.DocumentPath)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q", cfg.DataBackend)
	}
	if cfg.UndoDepth != 5 {
		t.Errorf("UndoDepth = %d", cfg.UndoDepth)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := &Config{
		DataBackend: "cloud",
		UndoDepth:   0,
		LogLevel:    "loud",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid data backend", "undo depth", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err.Error(), want)
		}
	}
}

func TestValidateJSONFileBackend(t *testing.T) {
	cfg := &Config{
		DocumentPath: "",
		BackupDir:    "",
		DataBackend:  "jsonfile",
		UndoDepth:    10,
		LogLevel:     "info",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty paths")
	}
	if !strings.Contains(err.Error(), "document path") {
		t.Errorf("error should mention document path, got %v", err)
	}
}
