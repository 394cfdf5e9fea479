package handlers

import (
	"log/slog"
	"net/http"

	"dailylog/models"

	"github.com/gin-gonic/gin"
)

type projectQuery struct {
	Active bool `form:"active"`
}

func CreateProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Debug("bind error", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project, err := store.CreateProject(c.Request.Context(), req.Name)
		if err != nil {
			respondStoreError(c, err, "failed to create project")
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

// ListProjects returns all projects, or only those offered for selection with ?active=true.
func ListProjects(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q projectQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		projects, err := store.ListProjects(c.Request.Context(), q.Active)
		if err != nil {
			respondStoreError(c, err, "failed to list projects")
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func GetProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project")
		if !ok {
			return
		}

		project, err := store.GetProject(c.Request.Context(), projectID)
		if err != nil {
			respondStoreError(c, err, "failed to get project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

// UpdateProject archives or restores a project.
func UpdateProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project")
		if !ok {
			return
		}

		var req models.UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project, err := store.SetProjectActive(c.Request.Context(), projectID, *req.Active)
		if err != nil {
			respondStoreError(c, err, "failed to update project")
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(store ProjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := parseIDParam(c, "project")
		if !ok {
			return
		}

		if err := store.DeleteProject(c.Request.Context(), projectID); err != nil {
			respondStoreError(c, err, "failed to delete project")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

func CreateTeamLeader(store TeamLeaderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateTeamLeaderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		leader, err := store.CreateTeamLeader(c.Request.Context(), req.Name)
		if err != nil {
			respondStoreError(c, err, "failed to create team leader")
			return
		}

		c.JSON(http.StatusCreated, leader)
	}
}
