package database

import (
	"context"
	"errors"
	"fmt"

	"dailylog/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateTeamLeader registers a team leader and issues their API key.
// The key is only returned here; later reads omit it.
func (db *DB) CreateTeamLeader(ctx context.Context, name string) (*models.TeamLeader, error) {
	query := `
		INSERT INTO team_leaders (name, api_key)
		VALUES ($1, $2)
		RETURNING id, name, api_key, created_at
	`

	var leader models.TeamLeader
	err := db.Pool.QueryRow(ctx, query, name, generateAPIKey()).
		Scan(&leader.ID, &leader.Name, &leader.APIKey, &leader.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team leader: %w", err)
	}

	db.logger.Info("created team leader", "team_leader_id", leader.ID)
	return &leader, nil
}

func (db *DB) GetTeamLeaderByAPIKey(ctx context.Context, apiKey string) (*models.TeamLeader, error) {
	query := `
		SELECT id, name, created_at
		FROM team_leaders
		WHERE api_key = $1
	`

	var leader models.TeamLeader
	err := db.Pool.QueryRow(ctx, query, apiKey).Scan(&leader.ID, &leader.Name, &leader.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invalid API key")
		}
		return nil, fmt.Errorf("failed to get team leader: %w", err)
	}

	return &leader, nil
}

func generateAPIKey() string {
	return fmt.Sprintf("dwl_%s", uuid.New().String())
}
