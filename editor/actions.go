package editor

import (
	"time"

	"dailylog/clock"
	"dailylog/models"
	"dailylog/roster"
	"dailylog/validation"
)

// Action is one user edit of a draft. The concrete types below are the only implementations.
type Action interface {
	// field names the form field the action touches.
	field() string
	apply(d *models.LogDraft, opts Options)
}

// SetDate changes the calendar day of the log. Its time of day is ignored.
type SetDate struct{ Date time.Time }

// SetProject selects the project by identifier.
type SetProject struct {
	ProjectID string
	Name      string
}

// SetEmployeeAt replaces one roster entry, verbatim.
type SetEmployeeAt struct {
	Index int
	Value string
}

// AddEmployee appends a blank roster entry.
type AddEmployee struct{}

// RemoveEmployeeAt deletes one roster entry, subject to Options.RemovePolicy.
type RemoveEmployeeAt struct{ Index int }

// SetStartTime picks the start time of day from the quarter-hour selector.
type SetStartTime struct{ Slot clock.Slot }

// SetEndTime picks the end time of day from the quarter-hour selector.
type SetEndTime struct{ Slot clock.Slot }

// SetDescription replaces the work description.
type SetDescription struct{ Text string }

// AddPhotoFiles appends newly selected photos to the pending uploads.
type AddPhotoFiles struct{ Files []models.PhotoFile }

// ClearPhotoFiles discards every pending upload.
type ClearPhotoFiles struct{}

func (SetDate) field() string          { return validation.FieldDate }
func (SetProject) field() string       { return validation.FieldProject }
func (SetEmployeeAt) field() string    { return validation.FieldEmployees }
func (AddEmployee) field() string      { return validation.FieldEmployees }
func (RemoveEmployeeAt) field() string { return validation.FieldEmployees }
func (SetStartTime) field() string     { return validation.FieldStartTime }
func (SetEndTime) field() string       { return validation.FieldEndTime }
func (SetDescription) field() string   { return validation.FieldWorkDescription }
func (AddPhotoFiles) field() string    { return "" }
func (ClearPhotoFiles) field() string  { return "" }

func (a SetDate) apply(d *models.LogDraft, _ Options) { d.Date = a.Date }

func (a SetProject) apply(d *models.LogDraft, _ Options) {
	d.ProjectID = a.ProjectID
	if a.Name != "" {
		d.ProjectName = a.Name
	}
}

func (a SetEmployeeAt) apply(d *models.LogDraft, _ Options) {
	d.Employees = d.Employees.Update(a.Index, a.Value)
}

func (AddEmployee) apply(d *models.LogDraft, _ Options) {
	d.Employees = d.Employees.Add()
}

func (a RemoveEmployeeAt) apply(d *models.LogDraft, opts Options) {
	d.Employees = d.Employees.Remove(a.Index, opts.RemovePolicy)
}

func (a SetStartTime) apply(d *models.LogDraft, opts Options) {
	d.StartTime = clock.Apply(a.Slot, reference(d.StartTime, opts))
}

func (a SetEndTime) apply(d *models.LogDraft, opts Options) {
	d.EndTime = clock.Apply(a.Slot, reference(d.EndTime, opts))
}

func (a SetDescription) apply(d *models.LogDraft, _ Options) { d.WorkDescription = a.Text }

func (a AddPhotoFiles) apply(d *models.LogDraft, _ Options) {
	d.NewPhotoFiles = append(d.NewPhotoFiles, a.Files...)
}

func (ClearPhotoFiles) apply(d *models.LogDraft, _ Options) { d.NewPhotoFiles = nil }

// Reduce returns the draft that results from applying a to d. d itself is not modified,
// and the returned roster always has at least one entry.
func Reduce(d models.LogDraft, a Action, opts Options) models.LogDraft {
	next := d.Clone()
	if a == nil {
		return next
	}
	a.apply(&next, opts)
	if len(next.Employees) == 0 {
		next.Employees = roster.New()
	}
	return next
}

func reference(t time.Time, opts Options) time.Time {
	if t.IsZero() {
		return opts.now()
	}
	return t
}
