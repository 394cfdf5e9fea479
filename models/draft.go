package models

import (
	"time"

	"dailylog/roster"
)

// LogDraft is the editable, session-scoped copy of a DailyLog.
//
// Only the time of day of StartTime and EndTime is authoritative; at submission both are
// moved onto the calendar day held by Date.
type LogDraft struct {
	Date              time.Time     `json:"date" validate:"required"`
	ProjectID         string        `json:"projectId" validate:"notblank"`
	ProjectName       string        `json:"-"`
	Employees         roster.Roster `json:"employees" validate:"min=1"`
	StartTime         time.Time     `json:"startTime" validate:"required"`
	EndTime           time.Time     `json:"endTime" validate:"required"`
	WorkDescription   string        `json:"workDescription" validate:"notblank"`
	Status            string        `json:"status"`
	NewPhotoFiles     []PhotoFile   `json:"-"`
	ExistingPhotos    []Attachment  `json:"-"`
	ExistingDocuments []Attachment  `json:"-"`
}

// Clone returns a copy whose slices can be mutated without touching d.
func (d LogDraft) Clone() LogDraft {
	next := d
	next.Employees = append(roster.Roster(nil), d.Employees...)
	next.NewPhotoFiles = append([]PhotoFile(nil), d.NewPhotoFiles...)
	return next
}
