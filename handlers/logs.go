package handlers

import (
	"net/http"
	"time"

	"dailylog/middleware"
	"dailylog/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

func ListLogs(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.LogQueryParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if params.Limit <= 0 {
			params.Limit = defaultPageSize
		}
		if params.Limit > maxPageSize {
			params.Limit = maxPageSize
		}
		if params.Offset < 0 {
			params.Offset = 0
		}

		start := time.Now()
		logs, total, err := store.ListLogs(c.Request.Context(), params)
		if err != nil {
			respondStoreError(c, err, "failed to query logs")
			return
		}
		elapsed := time.Since(start).Milliseconds()

		c.JSON(http.StatusOK, models.LogsResponse{
			Logs:        logs,
			Total:       total,
			Limit:       params.Limit,
			Offset:      params.Offset,
			HasMore:     int64(params.Offset+params.Limit) < total,
			QueryTimeMs: &elapsed,
		})
	}
}

func CreateLog(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		created, err := store.CreateLog(c.Request.Context(), middleware.TeamLeaderID(c), req)
		if err != nil {
			respondStoreError(c, err, "failed to create log")
			return
		}

		c.JSON(http.StatusCreated, created)
	}
}

func GetLog(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "log")
		if !ok {
			return
		}

		entry, err := store.GetLog(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "failed to get log")
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// UpdateLog replaces the editable fields of a log. The payload is validated again here;
// whatever the client checked is advisory.
func UpdateLog(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "log")
		if !ok {
			return
		}

		var req models.UpdateLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := store.UpdateLog(c.Request.Context(), id, req)
		if err != nil {
			respondStoreError(c, err, "failed to update log")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
