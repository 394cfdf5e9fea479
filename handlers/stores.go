package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dailylog/database"
	"dailylog/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LogStore is the subset of *database.DB the log handlers use.
type LogStore interface {
	CreateLog(ctx context.Context, teamLeaderID *uuid.UUID, req models.CreateLogRequest) (*models.DailyLog, error)
	GetLog(ctx context.Context, id uuid.UUID) (*models.DailyLog, error)
	UpdateLog(ctx context.Context, id uuid.UUID, req models.UpdateLogRequest) (*models.DailyLog, error)
	ListLogs(ctx context.Context, params models.LogQueryParams) ([]models.DailyLog, int64, error)
}

// AttachmentStore is the subset of *database.DB the photo handlers use.
type AttachmentStore interface {
	InsertAttachmentsBatch(ctx context.Context, logID uuid.UUID, files []database.NewAttachment) ([]models.Attachment, error)
	GetAttachment(ctx context.Context, id uuid.UUID) (*models.Attachment, []byte, error)
}

// ProjectStore is the subset of *database.DB the project handlers use.
type ProjectStore interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	SetProjectActive(ctx context.Context, projectID uuid.UUID, active bool) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

// TeamLeaderStore registers team leaders.
type TeamLeaderStore interface {
	CreateTeamLeader(ctx context.Context, name string) (*models.TeamLeader, error)
}

// respondStoreError maps store errors onto status codes. Unexpected errors are logged
// and reported with the generic message.
func respondStoreError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, database.ErrUnknownProject):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown project"})
	case errors.Is(err, database.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrProjectInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "project still has logs"})
	default:
		slog.Error(generic, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}

func parseIDParam(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}
