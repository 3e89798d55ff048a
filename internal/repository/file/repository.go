package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/domain/models"
)

// Repository persists the application document as one JSON file on disk.
// It backs single-host installs and tests, where MongoDB would be overkill.
type Repository struct {
	path   string
	logger *zap.Logger
}

// New builds a file-backed repository rooted at path. Parent directories are
// created on demand.
func New(path string, logger *zap.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("data file path must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &Repository{path: path, logger: logger}, nil
}

// Load reads the stored document. A missing file or an unparseable blob
// yields found=false so the caller starts from the default document; the
// corrupt blob is kept on disk until the next save overwrites it.
func (r *Repository) Load(_ context.Context) (models.Document, bool, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Document{}, false, nil
	}
	if err != nil {
		return models.Document{}, false, fmt.Errorf("read data file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.logger.Warn("stored document is unparseable, falling back to default",
			zap.String("path", r.path), zap.Error(err))
		return models.Document{}, false, nil
	}

	return doc, true, nil
}

// Save writes the document to a temporary file and renames it into place so a
// crash mid-write never leaves a truncated blob behind.
func (r *Repository) Save(_ context.Context, doc models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
