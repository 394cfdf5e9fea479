package models

import (
	"time"

	"github.com/google/uuid"
)

// Log lifecycle values.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
)

// DailyLog is one team leader's persisted record of a day's work on a project.
// Photos and Documents are read-only references; they are never part of an update payload.
type DailyLog struct {
	ID              uuid.UUID    `json:"id"`
	TeamLeaderID    *uuid.UUID   `json:"team_leader_id,omitempty"`
	Date            time.Time    `json:"date"`
	ProjectID       string       `json:"project_id"`
	ProjectName     string       `json:"project_name"`
	Employees       []string     `json:"employees"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	WorkDescription string       `json:"work_description"`
	Status          string       `json:"status"`
	Photos          []Attachment `json:"photos"`
	Documents       []Attachment `json:"documents"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Rank            *float64     `json:"rank,omitempty"` // Only populated for search results
}

// UpdateLogRequest is the write-only projection of an edited log.
// Date is the calendar day at midnight; StartTime and EndTime fall on that same day.
type UpdateLogRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	ProjectID       string    `json:"project_id" binding:"required,uuid"`
	Employees       []string  `json:"employees" binding:"required,min=1,dive,required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	WorkDescription string    `json:"work_description" binding:"required"`
	Status          string    `json:"status" binding:"required,oneof=draft submitted approved"`
}

// CreateLogRequest is the payload for recording a new daily log.
type CreateLogRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	ProjectID       string    `json:"project_id" binding:"required,uuid"`
	Employees       []string  `json:"employees" binding:"required,min=1,dive,required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	WorkDescription string    `json:"work_description" binding:"required"`
	Status          string    `json:"status" binding:"omitempty,oneof=draft submitted approved"`
}

// LogQueryParams are the filters accepted by GET /logs.
type LogQueryParams struct {
	ProjectID string `form:"project_id"`
	Status    string `form:"status"`
	From      string `form:"from"`
	To        string `form:"to"`
	Search    string `form:"search"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

type LogsResponse struct {
	Logs        []DailyLog `json:"logs"`
	Total       int64      `json:"total"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	HasMore     bool       `json:"has_more"`
	QueryTimeMs *int64     `json:"query_time_ms,omitempty"`
}
