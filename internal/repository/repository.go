// Package repository defines the persistence contract of the data layer: one
// keyed document blob, loaded and saved wholesale.
package repository

import (
	"context"

	"github.com/mamadbah2/agripoulet/internal/domain/models"
)

// Repository loads and saves the full application document. Load returns
// found=false when no document has ever been saved; an unreadable stored blob
// is treated the same way so the caller can fall back to the default document.
type Repository interface {
	Load(ctx context.Context) (models.Document, bool, error)
	Save(ctx context.Context, doc models.Document) error
}
