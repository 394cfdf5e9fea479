package database

import (
	"context"
	"errors"
	"fmt"

	"dailylog/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const selectProjectColumns = `id, name, active, created_at, updated_at`

func (db *DB) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	query := `
		INSERT INTO projects (name)
		VALUES ($1)
		RETURNING ` + selectProjectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	db.logger.Info("created project", "project_id", project.ID, "name", project.Name)
	return project, nil
}

// ListProjects returns projects by name. With activeOnly, archived projects are left out;
// this is the catalog offered when a log's project is changed.
func (db *DB) ListProjects(ctx context.Context, activeOnly bool) ([]models.Project, error) {
	query := `
		SELECT ` + selectProjectColumns + `
		FROM projects
		WHERE active OR NOT $1
		ORDER BY name
	`

	rows, err := db.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `
		SELECT ` + selectProjectColumns + `
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// SetProjectActive archives or restores a project. Existing logs keep referencing it.
func (db *DB) SetProjectActive(ctx context.Context, projectID uuid.UUID, active bool) (*models.Project, error) {
	query := `
		UPDATE projects
		SET active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + selectProjectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	db.logger.Info("project state changed", "project_id", projectID, "active", active)
	return project, nil
}

// DeleteProject removes a project that no log references yet.
func (db *DB) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("project %s still has logs: %w", projectID, ErrProjectInUse)
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	db.logger.Info("deleted project", "project_id", projectID)
	return nil
}

// Helper functions

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Active,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
