package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a work site that daily logs are recorded against.
// Only active projects are offered when a log's project is edited.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" binding:"required,min=3,max=255" db:"name"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateProjectRequest is the payload for creating a new project.
// Name is validated to be 3-255 characters.
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,min=3,max=255"`
}

// UpdateProjectRequest toggles whether a project is offered for selection.
type UpdateProjectRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

// TeamLeader owns daily logs and authenticates with a generated API key.
type TeamLeader struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTeamLeaderRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
