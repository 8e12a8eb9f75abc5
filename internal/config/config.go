package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Document store
	DocumentPath string
	BackupDir    string

	// Backend selection
	DataBackend string

	// SQLite backend
	SQLiteDBPath string

	// Undo
	UndoDepth     int
	UndoStatePath string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DocumentPath: getEnv("GASTOS_FILE", "gastos_pessoais.json"),
		BackupDir:    getEnv("GASTOS_BACKUP_DIR", "backups"),

		DataBackend:  getEnv("DATA_BACKEND", "jsonfile"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/gastos.db"),

		UndoDepth:     getEnvInt("GASTOS_UNDO_DEPTH", 10),
		UndoStatePath: getEnv("GASTOS_UNDO_FILE", ".gastos_undo.json"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"jsonfile", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "jsonfile" {
		if c.DocumentPath == "" {
			errors = append(errors, "document path cannot be empty when using jsonfile backend")
		}
		if c.BackupDir == "" {
			errors = append(errors, "backup directory cannot be empty when using jsonfile backend")
		}
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.UndoDepth < 1 {
		errors = append(errors, fmt.Sprintf("invalid undo depth %d: must be at least 1", c.UndoDepth))
	} else if c.UndoDepth > 100 {
		errors = append(errors, fmt.Sprintf("invalid undo depth %d: must be at most 100", c.UndoDepth))
	}

	if _, err := c.SlogLevel(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SlogLevel maps the configured level name onto slog's levels.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
