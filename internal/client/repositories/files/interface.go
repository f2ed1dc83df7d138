// Package files persists local file-store entries.
package files

import (
	"context"

	"github.com/chatfiles/chatfiles/internal/client/models"
)

// Repository is the persistence contract of the local file store. All
// operations are single-statement and therefore atomic: an entry is either
// fully present or absent.
type Repository interface {
	Insert(ctx context.Context, f *models.StoredFile) error
	GetByID(ctx context.Context, id string) (*models.StoredFile, error)
	DeleteByID(ctx context.Context, id string) error
	ListByUploader(ctx context.Context, uploaderID string) ([]models.StoredFile, error)
}
