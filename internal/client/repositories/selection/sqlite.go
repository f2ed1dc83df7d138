package selection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chatfiles/chatfiles/internal/common"
	"github.com/chatfiles/chatfiles/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, userID, partnerID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO selection (user_id, partner_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET partner_id = excluded.partner_id,
			updated_at = excluded.updated_at
	`, userID, partnerID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save selection[%s]: %w", userID, err)
	}
	return nil
}

func (r *SQLiteRepository) Current(ctx context.Context, userID string) (string, error) {
	var partnerID string
	err := r.db.QueryRowContext(ctx,
		`SELECT partner_id FROM selection WHERE user_id = ?`, userID).Scan(&partnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get selection[%s]: %w", userID, err)
	}
	return partnerID, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM selection WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear selection[%s]: %w", userID, err)
	}
	return nil
}
