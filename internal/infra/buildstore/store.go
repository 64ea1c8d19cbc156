// Package buildstore persists build reports as JSON files.
package buildstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/acrovato/gmshcfd/internal/domain"
)

const reportsDir = "reports"

type JSONStore struct {
	rootDir string
	now     func() time.Time
	newID   func() string
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDFunc is useful for tests.
func WithIDFunc(f func() string) Option {
	return func(s *JSONStore) { s.newID = f }
}

func NewJSONStore(root string, opts ...Option) *JSONStore {
	s := &JSONStore{
		rootDir: root,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveReport writes the report under <root>/reports and returns its ID.
// A missing ID or finish time is filled in.
func (s *JSONStore) SaveReport(report domain.BuildReport) (string, error) {
	dir := filepath.Join(s.rootDir, reportsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "buildstore.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	if report.ID == "" {
		report.ID = s.newID()
	}
	if report.FinishedAt.IsZero() {
		report.FinishedAt = s.now().UTC()
	}

	filename := fmt.Sprintf("%s_%s.json", report.FinishedAt.UTC().Format("20060102T150405Z"), report.ID)
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: "buildstore.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{Op: "buildstore.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{Op: "buildstore.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return report.ID, nil
}
