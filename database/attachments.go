package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailylog/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// NewAttachment is a file about to be stored against a log.
type NewAttachment struct {
	Kind        string
	Filename    string
	ContentType string
	Data        []byte
}

// InsertAttachmentsBatch stores files for a log in one round-trip using pgx batching.
// The batch runs in one implicit transaction, so either every file is stored or none.
// If any insert fails, returns BatchInsertError indicating which file failed.
// Empty slice is a no-op.
func (db *DB) InsertAttachmentsBatch(ctx context.Context, logID uuid.UUID, files []NewAttachment) ([]models.Attachment, error) {
	if len(files) == 0 {
		return []models.Attachment{}, nil
	}

	start := time.Now()
	defer func() {
		db.logger.Info("InsertAttachmentsBatch", "duration", time.Since(start), "log_id", logID, "count", len(files))
	}()

	query := `
		INSERT INTO log_attachments (log_id, kind, filename, content_type, size, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	batch := &pgx.Batch{}
	for _, f := range files {
		batch.Queue(query, logID, f.Kind, f.Filename, f.ContentType, int64(len(f.Data)), f.Data)
	}

	results := db.Pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	stored := make([]models.Attachment, 0, len(files))
	for i, f := range files {
		a := models.Attachment{
			LogID:       logID,
			Kind:        f.Kind,
			Filename:    f.Filename,
			ContentType: f.ContentType,
			Size:        int64(len(f.Data)),
		}
		if err := results.QueryRow().Scan(&a.ID, &a.CreatedAt); err != nil {
			if isForeignKeyViolation(err) {
				return nil, ErrNotFound
			}
			return nil, &BatchInsertError{FailedIndex: i, Total: len(files), Err: err}
		}
		a.URL = attachmentURL(a.ID)
		stored = append(stored, a)
	}

	return stored, nil
}

// ListAttachments returns the references (without content) stored for a log, oldest first.
func (db *DB) ListAttachments(ctx context.Context, logID uuid.UUID) ([]models.Attachment, error) {
	query := `
		SELECT id, log_id, kind, filename, content_type, size, created_at
		FROM log_attachments
		WHERE log_id = $1
		ORDER BY created_at, id
	`

	rows, err := db.Pool.Query(ctx, query, logID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	attachments := []models.Attachment{}
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.LogID, &a.Kind, &a.Filename, &a.ContentType, &a.Size, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.URL = attachmentURL(a.ID)
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}

	return attachments, nil
}

// GetAttachment returns one attachment with its content.
func (db *DB) GetAttachment(ctx context.Context, id uuid.UUID) (*models.Attachment, []byte, error) {
	query := `
		SELECT id, log_id, kind, filename, content_type, size, created_at, data
		FROM log_attachments
		WHERE id = $1
	`

	var a models.Attachment
	var data []byte
	err := db.Pool.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.LogID, &a.Kind, &a.Filename, &a.ContentType, &a.Size, &a.CreatedAt, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	a.URL = attachmentURL(a.ID)
	return &a, data, nil
}

func attachmentURL(id uuid.UUID) string {
	return "/attachments/" + id.String()
}
