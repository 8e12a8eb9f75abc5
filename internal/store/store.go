// Package store defines the document store port: durable whole-document
// load and save, plus manual backups. Implementations live in the
// jsonfile, sqlite and memory subpackages.
package store

import (
	"context"
	"fmt"
	"time"

	"gastos/internal/core"
)

// DocumentStore persists the Document as a unit. Load never fails on a
// corrupt backing file: the file is quarantined and an empty document is
// substituted, with the notice returned alongside.
type DocumentStore interface {
	Load(ctx context.Context) (*core.Document, *CorruptionNotice, error)
	Save(ctx context.Context, doc *core.Document) error
	Backup(ctx context.Context) (string, error)
}

// CorruptionNotice reports that the backing file could not be parsed and
// was moved aside. It is informational; the data survives out-of-band at
// QuarantinePath.
type CorruptionNotice struct {
	OriginalPath   string
	QuarantinePath string
}

func (n *CorruptionNotice) Message() string {
	if n.QuarantinePath == "" {
		return fmt.Sprintf("data file %s was corrupt and could not be moved aside", n.OriginalPath)
	}
	return fmt.Sprintf("data file %s was corrupt and has been moved to %s", n.OriginalPath, n.QuarantinePath)
}

// TimestampedName builds the backup/quarantine naming pattern
// <prefix>_<YYYYMMDD_HHMMSS>.<ext>.
func TimestampedName(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format("20060102_150405"), ext)
}
