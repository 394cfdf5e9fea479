package main

import (
	"context"
	"time"

	"dailylog/editor"
	"dailylog/models"
)

// zonedLogs presents fetched logs in the user's time zone so the quarter-hour
// selector and the date refer to local wall time.
type zonedLogs struct {
	editor.LogStore
	loc *time.Location
}

func (z zonedLogs) FetchLog(ctx context.Context, id string) (*models.DailyLog, error) {
	rec, err := z.LogStore.FetchLog(ctx, id)
	if err != nil || z.loc == nil {
		return rec, err
	}
	if !rec.Date.IsZero() {
		// The date has no zone of its own; keep its calendar day.
		rec.Date = time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, z.loc)
	}
	if !rec.StartTime.IsZero() {
		rec.StartTime = rec.StartTime.In(z.loc)
	}
	if !rec.EndTime.IsZero() {
		rec.EndTime = rec.EndTime.In(z.loc)
	}
	return rec, nil
}
