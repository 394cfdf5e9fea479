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

const (
	defaultLimit = 50
	maxLimit     = 1000
)

// selectLogColumns must stay in the order scanLog reads them.
const selectLogColumns = `
	l.id, l.team_leader_id, l.work_date, l.project_id, p.name, l.employees,
	l.start_time, l.end_time, l.work_description, l.status, l.created_at, l.updated_at`

// CreateLog records a new daily log. Status defaults to draft.
func (db *DB) CreateLog(ctx context.Context, teamLeaderID *uuid.UUID, req models.CreateLogRequest) (*models.DailyLog, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, ErrUnknownProject
	}
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	query := `
		INSERT INTO daily_logs (team_leader_id, project_id, work_date, employees,
			start_time, end_time, work_description, status)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id uuid.UUID
	err = db.Pool.QueryRow(ctx, query, teamLeaderID, projectID, req.Date.Format(dateLayout),
		req.Employees, req.StartTime, req.EndTime, req.WorkDescription, status).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownProject
		}
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	db.logger.Info("created log", "log_id", id, "project_id", projectID)
	return db.GetLog(ctx, id)
}

// GetLog returns a log with its project name and attachment references.
func (db *DB) GetLog(ctx context.Context, id uuid.UUID) (*models.DailyLog, error) {
	query := `SELECT ` + selectLogColumns + `, 0::float8, 0::bigint
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		WHERE l.id = $1
	`

	logEntry, _, err := scanLog(db.Pool.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get log: %w", err)
	}

	attachments, err := db.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, a := range attachments {
		if a.Kind == models.KindPhoto {
			logEntry.Photos = append(logEntry.Photos, a)
		} else {
			logEntry.Documents = append(logEntry.Documents, a)
		}
	}

	return logEntry, nil
}

// UpdateLog overwrites the editable fields of a log. Attachments are untouched.
// Returns ErrNotFound for an unknown id and ErrUnknownProject for an unknown project.
func (db *DB) UpdateLog(ctx context.Context, id uuid.UUID, req models.UpdateLogRequest) (*models.DailyLog, error) {
	start := time.Now()
	defer func() {
		db.logger.Info("UpdateLog", "duration", time.Since(start), "log_id", id)
	}()

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, ErrUnknownProject
	}

	query := `
		UPDATE daily_logs
		SET work_date = $2::date,
			project_id = $3,
			employees = $4,
			start_time = $5,
			end_time = $6,
			work_description = $7,
			status = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updated uuid.UUID
	err = db.Pool.QueryRow(ctx, query, id, req.Date.Format(dateLayout), projectID, req.Employees,
		req.StartTime, req.EndTime, req.WorkDescription, req.Status).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownProject
		}
		return nil, fmt.Errorf("failed to update log: %w", err)
	}

	return db.GetLog(ctx, updated)
}

// ListLogs retrieves logs with optional filtering and pagination.
// If params.Search is provided, delegates to SearchLogs for full-text search.
// Uses COUNT(*) OVER() window function to get total count in single query.
// Returns logs ordered by work date DESC (newest first). Attachments are not loaded.
//
// Filters applied:
//   - ProjectID: exact match
//   - Status: exact match (e.g., "draft", "submitted")
//   - From/To: inclusive work date range (YYYY-MM-DD)
//   - Limit: max results (default 50, max 1000)
//   - Offset: pagination offset (default 0)
//
// Returns empty slice (not nil) if no logs match.
func (db *DB) ListLogs(ctx context.Context, params models.LogQueryParams) ([]models.DailyLog, int64, error) {
	start := time.Now()
	defer func() {
		db.logger.Info("ListLogs", "duration", time.Since(start), "project", params.ProjectID,
			"status", params.Status, "search", params.Search)
	}()

	if params.Search != "" {
		return db.SearchLogs(ctx, params)
	}

	limit := validateLimit(params.Limit, defaultLimit, maxLimit)
	offset := validateOffset(params.Offset)

	qb := NewQueryBuilder()
	if err := addLogFilters(qb, params); err != nil {
		return nil, 0, err
	}

	// SAFETY: All user input is parameterized via $N placeholders.
	query := fmt.Sprintf(`
		SELECT %s, 0::float8, COUNT(*) OVER() as total_count
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		%s
		ORDER BY %s DESC, l.start_time DESC
		LIMIT $%d OFFSET $%d
	`, selectLogColumns, qb.WhereClause(), columnWorkDate, qb.NextArgNum(), qb.NextArgNum()+1)

	args := append(qb.Args(), limit, offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows, false)
}

// addLogFilters appends the exact-match and date filters. Malformed values are
// reported as ErrInvalidFilter.
func addLogFilters(qb *QueryBuilder, params models.LogQueryParams) error {
	if params.ProjectID != "" {
		projectID, err := uuid.Parse(params.ProjectID)
		if err != nil {
			return fmt.Errorf("%w: project_id: %v", ErrInvalidFilter, err)
		}
		qb.AddCondition(columnProjectID, projectID)
	}
	if params.Status != "" {
		qb.AddCondition(columnStatus, params.Status)
	}
	if err := qb.AddDateRange(columnWorkDate, params.From, params.To); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanLog(row rowScanner, includeRank bool) (*models.DailyLog, int64, error) {
	var entry models.DailyLog
	var projectID uuid.UUID
	var rank float64
	var total int64

	err := row.Scan(
		&entry.ID, &entry.TeamLeaderID, &entry.Date, &projectID, &entry.ProjectName,
		&entry.Employees, &entry.StartTime, &entry.EndTime, &entry.WorkDescription,
		&entry.Status, &entry.CreatedAt, &entry.UpdatedAt, &rank, &total,
	)
	if err != nil {
		return nil, 0, err
	}

	entry.ProjectID = projectID.String()
	if entry.Employees == nil {
		entry.Employees = []string{}
	}
	entry.Photos = []models.Attachment{}
	entry.Documents = []models.Attachment{}
	if includeRank {
		entry.Rank = &rank
	}
	return &entry, total, nil
}

func scanLogs(rows rowsScanner, includeRank bool) ([]models.DailyLog, int64, error) {
	logs := []models.DailyLog{}
	var total int64

	for rows.Next() {
		entry, t, err := scanLog(rows, includeRank)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan log: %w", err)
		}
		total = t
		logs = append(logs, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating logs: %w", err)
	}

	return logs, total, nil
}
