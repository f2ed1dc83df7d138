// Package localstore is the browser-local-storage analogue: a key-value
// store persisting small files as base64 data URLs. It serves as the final
// fallback of the direct-upload chain and as the resolver's source for
// local-storage:// references.
//
// Entries have no expiration or eviction policy; the only size limit is the
// per-file validation cap. Deletion is explicit.
package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/client/repositories/files"
	"github.com/chatfiles/chatfiles/internal/common"
	"github.com/chatfiles/chatfiles/internal/filex"
	"github.com/chatfiles/chatfiles/internal/logging"
)

// FileIDFromURL extracts the file id from a local-storage:// URL. The second
// return reports whether the URL uses the local-storage scheme at all.
func FileIDFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, models.LocalStorageScheme)
}

// Service implements the local file store over a files.Repository.
type Service struct {
	repo    files.Repository
	blobDir string
	log     logging.Logger

	// test seams
	now   func() time.Time
	newID func() string
}

func NewService(repo files.Repository, blobDir string, log logging.Logger) *Service {
	return &Service{
		repo:    repo,
		blobDir: blobDir,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// StoreFile encodes fu as a data URL and persists it under a fresh id.
// It returns the id and the synthetic local-storage:// URL. Persistence
// failures (quota, serialization) wrap common.ErrStorageQuota; the entry is
// either fully present or absent.
func (s *Service) StoreFile(ctx context.Context, fu models.FileUpload, uploaderID string) (string, string, error) {
	id := s.newID()

	entry := &models.StoredFile{
		ID:         id,
		Data:       EncodeDataURL(fu.MimeType, fu.Data),
		Size:       fu.Size(),
		MimeType:   fu.MimeType,
		UploadedBy: uploaderID,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrStorageQuota, err)
	}

	s.log.Info(ctx, "file stored locally", "fileId", id, "size", entry.Size, "mimeType", entry.MimeType)
	return id, models.LocalStorageScheme + id, nil
}

// GetFile looks up an entry by exact id; common.ErrorNotFound when absent.
func (s *Service) GetFile(ctx context.Context, id string) (*models.StoredFile, error) {
	return s.repo.GetByID(ctx, id)
}

// Bytes returns the decoded payload and MIME type of a stored entry.
func (s *Service) Bytes(ctx context.Context, id string) ([]byte, string, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	mimeType, data, err := DecodeDataURL(entry.Data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: entry %s: %v", common.ErrStorageQuota, id, err)
	}
	return data, mimeType, nil
}

// Materialize decodes a stored entry into a transient file under the blob
// cache directory and returns its path, for handing to an external viewer.
// The caller removes the file after use.
func (s *Service) Materialize(ctx context.Context, id string) (string, error) {
	data, _, err := s.Bytes(ctx, id)
	if err != nil {
		return "", err
	}

	dir, err := filex.EnsureDir(s.blobDir)
	if err != nil {
		return "", fmt.Errorf("error creating blob cache dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString())
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("error writing blob file: %w", err)
	}

	return path, nil
}

// Delete removes an entry explicitly.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// ListByUploader returns the entries stored by one uploader, newest first.
func (s *Service) ListByUploader(ctx context.Context, uploaderID string) ([]models.StoredFile, error) {
	return s.repo.ListByUploader(ctx, uploaderID)
}
