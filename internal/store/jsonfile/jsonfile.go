// Package jsonfile is the primary document store: a single JSON file
// replaced atomically on every save, with corrupt files quarantined into
// the backup directory instead of discarded.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/store"
)

type Store struct {
	path      string
	backupDir string
	now       func() time.Time
}

func New(path, backupDir string) *Store {
	return &Store{
		path:      path,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// NewWithClock is used by tests that need deterministic file names.
func NewWithClock(path, backupDir string, now func() time.Time) *Store {
	return &Store{path: path, backupDir: backupDir, now: now}
}

// Load reads the document file. An absent file yields a fresh empty
// document. An unparsable file is quarantined and an empty document is
// substituted; the caller gets a non-nil notice, never an error.
func (s *Store) Load(ctx context.Context) (*core.Document, *store.CorruptionNotice, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.NewDocument(), nil, nil
		}
		return nil, nil, fmt.Errorf("read document file: %w", err)
	}

	doc := core.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		notice := s.quarantine(ctx, err)
		return core.NewDocument(), notice, nil
	}

	doc.Normalize()
	return doc, nil, nil
}

// quarantine moves the unreadable file into the backup directory under a
// timestamped name. The original bytes are preserved, never discarded.
func (s *Store) quarantine(ctx context.Context, cause error) *store.CorruptionNotice {
	notice := &store.CorruptionNotice{OriginalPath: s.path}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		slog.ErrorContext(ctx, "Failed to create backup directory for quarantine",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldPath, s.backupDir,
			applog.FieldError, err)
		return notice
	}

	dest := filepath.Join(s.backupDir, store.TimestampedName("corrupt", "json", s.now()))
	if err := os.Rename(s.path, dest); err != nil {
		slog.ErrorContext(ctx, "Failed to quarantine corrupt document file",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldPath, s.path,
			applog.FieldError, err)
		return notice
	}

	notice.QuarantinePath = dest
	slog.WarnContext(ctx, "Corrupt document file quarantined",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldOperation, applog.OpQuarantine,
		applog.FieldPath, s.path,
		applog.FieldQuarantinePath, dest,
		applog.FieldError, cause)
	return notice
}

// Save serializes the whole document and replaces the live file
// atomically: temp file in the same directory, then rename over the
// target. The old file stays valid until the rename completes.
func (s *Store) Save(ctx context.Context, doc *core.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	abs, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve document path: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".gastos-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, abs); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace document file: %w", err)
	}

	slog.DebugContext(ctx, "Document saved",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldOperation, applog.OpSave,
		applog.FieldPath, s.path,
		applog.FieldCount, len(doc.Expenses))
	return nil
}

// Backup writes a timestamped snapshot of the current document into the
// backup directory, independent of the live file.
func (s *Store) Backup(ctx context.Context) (string, error) {
	doc, _, err := s.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load for backup: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	dest := filepath.Join(s.backupDir, store.TimestampedName("backup", "json", s.now()))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}

	slog.InfoContext(ctx, "Backup written",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldOperation, applog.OpBackup,
		applog.FieldBackupPath, dest)
	return dest, nil
}
