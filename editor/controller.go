// Package editor drives one edit session of a daily work log: it loads the persisted
// record into a draft, applies user actions, validates, and persists the result through
// a metadata update followed by a separate photo upload.
package editor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"dailylog/models"
	"dailylog/roster"
	"dailylog/validation"

	"golang.org/x/sync/errgroup"
)

// LogStore fetches and updates persisted logs.
type LogStore interface {
	FetchLog(ctx context.Context, id string) (*models.DailyLog, error)
	UpdateLog(ctx context.Context, id string, req models.UpdateLogRequest) error
}

// ProjectCatalog lists the projects a log may be moved to.
type ProjectCatalog interface {
	ListActiveProjects(ctx context.Context) ([]models.Project, error)
}

// AttachmentStore persists binary photos against an existing log.
type AttachmentStore interface {
	UploadPhotos(ctx context.Context, logID string, files []models.PhotoFile) error
}

// Notifier presents fire-and-forget messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator leaves the editing context after a successful submission.
type Navigator interface {
	Leave()
}

// User-facing notification texts.
const (
	MsgLoadFailed   = "Failed to load the daily log"
	MsgUpdated      = "Daily log updated successfully"
	MsgUpdateFailed = "Updating the daily log failed"
	MsgUploadFailed = "The daily log was saved, but the photos could not be uploaded"
)

// Options select the deployment variant of the form.
type Options struct {
	// SelectableProject fetches the active projects so the project can be changed.
	// When false the loaded project is shown read-only.
	SelectableProject bool
	// StrictEmployees rejects blank roster entries instead of dropping them at submission.
	StrictEmployees bool
	// RemovePolicy decides what removing the only employee does.
	RemovePolicy roster.RemovePolicy
	// RequireEndAfterStart rejects an end time of day that is not after the start.
	RequireEndAfterStart bool
	// SubmitStatus, when set, replaces the loaded status on every submission.
	SubmitStatus string
	// ShowWorkHours enables the WorkHours display value.
	ShowWorkHours bool
	// Now supplies the current time for missing timestamps. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Deps are the collaborators of a Controller. Projects may be nil only when
// Options.SelectableProject is false; Load fails with ErrNoCatalog otherwise.
// Notifier, Navigator and Logger are optional.
type Deps struct {
	Logs        LogStore
	Projects    ProjectCatalog
	Attachments AttachmentStore
	Notifier    Notifier
	Navigator   Navigator
	Logger      *slog.Logger
}

// Controller holds the draft of a single edit session. It is driven by one user and
// is not safe for concurrent use.
type Controller struct {
	deps      Deps
	opts      Options
	validator *validation.Validator

	state    State
	logID    string
	draft    models.LogDraft
	projects []models.Project
	touched  map[string]bool
	lastErr  error
}

// New returns a Controller in the Loading state.
func New(deps Deps, opts Options) *Controller {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		deps: deps,
		opts: opts,
		validator: validation.New(validation.Options{
			StrictEmployees:      opts.StrictEmployees,
			RequireEndAfterStart: opts.RequireEndAfterStart,
		}),
		state:   Loading,
		touched: map[string]bool{},
	}
}

// Load fetches the log, and the active projects when selectable, concurrently, and
// builds the draft. Any fetch failure leaves the session in LoadFailed with no draft.
func (c *Controller) Load(ctx context.Context, logID string) error {
	if c.state != Loading || c.logID != "" {
		return ErrNotReady
	}
	c.logID = logID

	if c.opts.SelectableProject && c.deps.Projects == nil {
		return c.failLoad(ErrNoCatalog)
	}

	start := time.Now()
	var record *models.DailyLog
	var projects []models.Project

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, err := c.deps.Logs.FetchLog(gctx, logID)
		if err != nil {
			return err
		}
		record = rec
		return nil
	})
	if c.opts.SelectableProject {
		g.Go(func() error {
			list, err := c.deps.Projects.ListActiveProjects(gctx)
			if err != nil {
				return err
			}
			projects = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return c.failLoad(err)
	}
	if record == nil {
		return c.failLoad(ErrLogMissing)
	}

	c.draft = draftFromRecord(record, c.opts.now())
	c.projects = projects
	c.state = Ready
	c.deps.Logger.Info("draft loaded", "log_id", logID, "projects", len(projects),
		"duration", time.Since(start))
	return nil
}

func (c *Controller) failLoad(err error) error {
	c.state = LoadFailed
	c.lastErr = &LoadError{LogID: c.logID, Err: err}
	c.deps.Logger.Error("load failed", "log_id", c.logID, "error", err)
	c.notifyError(MsgLoadFailed)
	return c.lastErr
}

// draftFromRecord maps a persisted log into editable form state, filling gaps with now.
func draftFromRecord(rec *models.DailyLog, now time.Time) models.LogDraft {
	d := models.LogDraft{
		Date:              orNow(rec.Date, now),
		ProjectID:         rec.ProjectID,
		ProjectName:       rec.ProjectName,
		Employees:         roster.New(rec.Employees...),
		StartTime:         orNow(rec.StartTime, now),
		EndTime:           orNow(rec.EndTime, now),
		WorkDescription:   rec.WorkDescription,
		Status:            rec.Status,
		ExistingPhotos:    append([]models.Attachment(nil), rec.Photos...),
		ExistingDocuments: append([]models.Attachment(nil), rec.Documents...),
	}
	if d.Status == "" {
		d.Status = models.StatusDraft
	}
	return d
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

// Dispatch applies one user action to the draft and marks its field touched.
func (c *Controller) Dispatch(a Action) error {
	if !c.state.Editable() {
		return ErrNotReady
	}
	if sp, ok := a.(SetProject); ok && sp.Name == "" {
		sp.Name = c.projectName(sp.ProjectID)
		a = sp
	}
	c.draft = Reduce(c.draft, a, c.opts)
	if a != nil && a.field() != "" {
		c.touched[a.field()] = true
	}
	return nil
}

func (c *Controller) projectName(id string) string {
	for _, p := range c.projects {
		if p.ID.String() == id {
			return p.Name
		}
	}
	return ""
}

// Touch marks a field as visited so its error becomes visible.
func (c *Controller) Touch(field string) {
	c.touched[field] = true
}

// Errors evaluates every rule against the current draft.
func (c *Controller) Errors() validation.Errors {
	return c.validator.Validate(c.draft)
}

// VisibleErrors returns only the errors of touched fields.
func (c *Controller) VisibleErrors() validation.Errors {
	visible := validation.Errors{}
	for field, msg := range c.Errors() {
		if c.touched[field] {
			visible[field] = msg
		}
	}
	return visible
}

// Submit validates the draft, sends the metadata update and then, if photos are pending,
// uploads them. Validation failures issue no network call. An update failure skips the
// upload. An upload failure does not undo the committed update.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.state.Editable() {
		return ErrNotReady
	}

	if errs := c.Errors(); !errs.Valid() {
		for _, field := range validation.AllFields {
			c.touched[field] = true
		}
		c.lastErr = &ValidationError{Errors: errs}
		return c.lastErr
	}

	c.state = Submitting
	payload := BuildPayload(c.draft, c.opts.SubmitStatus)

	if err := c.deps.Logs.UpdateLog(ctx, c.logID, payload); err != nil {
		c.state = FailedAtUpdate
		c.lastErr = &UpdateError{LogID: c.logID, Err: err}
		c.deps.Logger.Error("log update failed", "log_id", c.logID, "error", err)
		c.notifyError(MsgUpdateFailed)
		return c.lastErr
	}
	c.deps.Logger.Info("log updated", "log_id", c.logID, "employees", len(payload.Employees))

	if err := c.uploadPending(ctx); err != nil {
		return err
	}
	c.succeed()
	return nil
}

// RetryUpload resends the pending photos after an upload failure, without repeating
// the metadata update.
func (c *Controller) RetryUpload(ctx context.Context) error {
	if c.state != FailedAtUpload {
		return ErrNotReady
	}
	if len(c.draft.NewPhotoFiles) == 0 {
		return ErrNoPendingUpload
	}
	c.state = Submitting
	if err := c.uploadPending(ctx); err != nil {
		return err
	}
	c.succeed()
	return nil
}

func (c *Controller) uploadPending(ctx context.Context) error {
	files := c.draft.NewPhotoFiles
	if len(files) == 0 {
		return nil
	}
	if err := c.deps.Attachments.UploadPhotos(ctx, c.logID, files); err != nil {
		c.state = FailedAtUpload
		c.lastErr = &UploadError{LogID: c.logID, Photos: len(files), Err: err}
		c.deps.Logger.Error("photo upload failed", "log_id", c.logID, "photos", len(files), "error", err)
		c.notifyError(MsgUploadFailed)
		return c.lastErr
	}
	c.deps.Logger.Info("photos uploaded", "log_id", c.logID, "photos", len(files))
	return nil
}

func (c *Controller) succeed() {
	c.state = Succeeded
	c.lastErr = nil
	if c.deps.Notifier != nil {
		c.deps.Notifier.Success(MsgUpdated)
	}
	if c.deps.Navigator != nil {
		c.deps.Navigator.Leave()
	}
}

func (c *Controller) notifyError(msg string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Error(msg)
	}
}

// BuildPayload projects a draft onto the update request. Both boundaries are moved onto
// the draft's calendar day, keeping only their hour and minute. A non-empty status
// overrides the draft's own.
func BuildPayload(d models.LogDraft, status string) models.UpdateLogRequest {
	day := dateOnly(d.Date)
	if status == "" {
		status = d.Status
	}
	if status == "" {
		status = models.StatusDraft
	}
	return models.UpdateLogRequest{
		Date:            day,
		ProjectID:       d.ProjectID,
		Employees:       d.Employees.Materialize(),
		StartTime:       onDay(day, d.StartTime),
		EndTime:         onDay(day, d.EndTime),
		WorkDescription: d.WorkDescription,
		Status:          status,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func onDay(day, timeOfDay time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, day.Location())
}

// WorkHours is the displayed span between the start and end time of day. It reports
// false when the deployment does not show it.
func (c *Controller) WorkHours() (time.Duration, bool) {
	if !c.opts.ShowWorkHours || c.state == Loading || c.state == LoadFailed {
		return 0, false
	}
	day := dateOnly(c.draft.Date)
	span := onDay(day, c.draft.EndTime).Sub(onDay(day, c.draft.StartTime))
	if span < 0 {
		span = 0
	}
	return span, true
}

func (c *Controller) State() State { return c.state }

func (c *Controller) LogID() string { return c.logID }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.LogDraft { return c.draft.Clone() }

// Projects returns the selectable projects fetched at load time.
func (c *Controller) Projects() []models.Project {
	return append([]models.Project(nil), c.projects...)
}

// Err returns the failure of the last load or submission, if any.
func (c *Controller) Err() error { return c.lastErr }

// CanRemoveEmployee reports whether the remove control should be enabled.
func (c *Controller) CanRemoveEmployee() bool {
	return c.draft.Employees.CanRemove(c.opts.RemovePolicy)
}
