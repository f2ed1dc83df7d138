package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/common"
	"github.com/chatfiles/chatfiles/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert stores a new entry. IDs are unique; inserting an existing id fails.
func (r *SQLiteRepository) Insert(ctx context.Context, f *models.StoredFile) error {
	query := `INSERT INTO stored_files (id, data, size, mime_type, uploaded_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Data, f.Size, f.MimeType, f.UploadedBy, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert stored file: %w", err)
	}
	return nil
}

// GetByID looks up an entry by its exact id. Returns common.ErrorNotFound
// when no row exists.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.StoredFile, error) {
	query := `SELECT id, data, size, mime_type, uploaded_by, created_at
			FROM stored_files WHERE id = ?`

	var f models.StoredFile
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&f.ID, &f.Data, &f.Size, &f.MimeType, &f.UploadedBy, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select stored file: %w", err)
	}
	return &f, nil
}

// DeleteByID removes an entry. Deleting a missing id is not an error.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stored_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return nil
}

// ListByUploader returns all entries stored by uploaderID, newest first.
func (r *SQLiteRepository) ListByUploader(ctx context.Context, uploaderID string) ([]models.StoredFile, error) {
	query := `SELECT id, data, size, mime_type, uploaded_by, created_at
			FROM stored_files WHERE uploaded_by = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, uploaderID)
	if err != nil {
		return nil, fmt.Errorf("failed to select stored files: %w", err)
	}
	defer rows.Close()

	var result []models.StoredFile
	for rows.Next() {
		var f models.StoredFile
		if err := rows.Scan(&f.ID, &f.Data, &f.Size, &f.MimeType, &f.UploadedBy, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stored file: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stored files: %w", err)
	}

	return result, nil
}
