package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"dailylog/clock"
	"dailylog/editor"
	"dailylog/models"
	"dailylog/roster"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type editFlags struct {
	date        string
	project     string
	employees   []string
	start       string
	end         string
	description string
	photos      []string
	status      string

	selectProject        bool
	strictEmployees      bool
	requireEndAfterStart bool
	keepLastEmployee     bool
	retryUpload          int
	dryRun               bool
}

// changes are the parsed flags. Nil fields were not given and leave the draft alone.
type changes struct {
	date        *time.Time
	project     *string
	employees   []string
	start       *clock.Slot
	end         *clock.Slot
	description *string
	photos      []models.PhotoFile
}

func newEditCmd(a *app) *cobra.Command {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <log-id>",
		Short: "Change fields of a log and save it",
		Long: `edit loads the log, applies the given changes, validates the result and saves it.
New photos are uploaded after the log itself has been saved. If only the upload fails,
the saved changes stay and --retry-upload controls how often the upload is retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := parseChanges(cmd.Flags(), f, a.cfg.Location, a.readFile)
			if err != nil {
				return err
			}
			return a.runEdit(cmd, args[0], f, ch)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.date, "date", "", "Work date (YYYY-MM-DD)")
	fl.StringVar(&f.project, "project", "", "Project ID")
	fl.StringArrayVar(&f.employees, "employee", nil, "Employee name; repeat to set the whole roster")
	fl.StringVar(&f.start, "start", "", "Start time (HH:MM on a quarter hour)")
	fl.StringVar(&f.end, "end", "", "End time (HH:MM on a quarter hour)")
	fl.StringVar(&f.description, "description", "", "Work description")
	fl.StringArrayVar(&f.photos, "photo", nil, "Path of a photo to upload; repeatable")
	fl.StringVar(&f.status, "status", "", "Status to save with (draft, submitted, approved); defaults to the current one")
	fl.BoolVar(&f.selectProject, "select-project", a.cfg.SelectProject, "Check --project against the active projects")
	fl.BoolVar(&f.strictEmployees, "strict-employees", a.cfg.StrictEmployees, "Reject blank employee names instead of dropping them")
	fl.BoolVar(&f.requireEndAfterStart, "require-end-after-start", false, "Reject an end time that is not after the start time")
	fl.BoolVar(&f.keepLastEmployee, "keep-last-employee", false, "Never remove the only employee entry")
	fl.IntVar(&f.retryUpload, "retry-upload", 0, "Retry a failed photo upload this many times")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Validate and print the update without saving")
	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, logID string, f *editFlags, ch changes) error {
	ctx := cmd.Context()

	if f.status != "" && f.status != models.StatusDraft && f.status != models.StatusSubmitted && f.status != models.StatusApproved {
		return fmt.Errorf("unknown status %q", f.status)
	}

	policy := roster.ResetToBlank
	if f.keepLastEmployee {
		policy = roster.KeepLast
	}

	nav := &exitNavigator{}
	ctrl := a.controller(editor.Options{
		SelectableProject:    f.selectProject,
		StrictEmployees:      f.strictEmployees,
		RemovePolicy:         policy,
		RequireEndAfterStart: f.requireEndAfterStart,
		SubmitStatus:         f.status,
	}, nav)

	if err := ctrl.Load(ctx, logID); err != nil {
		return err
	}

	if ch.project != nil && f.selectProject && !isActiveProject(ctrl.Projects(), *ch.project) {
		return fmt.Errorf("project %s is not an active project", *ch.project)
	}

	for _, action := range actionsFor(ctrl.Draft(), ch) {
		if err := ctrl.Dispatch(action); err != nil {
			return err
		}
	}

	if f.dryRun {
		if errs := ctrl.Errors(); !errs.Valid() {
			return a.reportInvalid(errs.Fields(), errs)
		}
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(editor.BuildPayload(ctrl.Draft(), f.status))
	}

	err := ctrl.Submit(ctx)
	for attempt := 0; err != nil && ctrl.State() == editor.FailedAtUpload && attempt < f.retryUpload; attempt++ {
		a.logger.Warn("retrying photo upload", "log_id", logID, "attempt", attempt+1)
		err = ctrl.RetryUpload(ctx)
	}

	var invalid *editor.ValidationError
	if errors.As(err, &invalid) {
		return a.reportInvalid(invalid.Errors.Fields(), invalid.Errors)
	}
	if err != nil {
		return err
	}

	if nav.left {
		fmt.Fprintf(a.out, "Updated log %s\n", logID)
		if n := len(ch.photos); n > 0 {
			fmt.Fprintf(a.out, "Uploaded %d photo(s)\n", n)
		}
	}
	return nil
}

func (a *app) reportInvalid(fields []string, errs map[string]string) error {
	for _, field := range fields {
		fmt.Fprintf(a.errOut, "  %s: %s\n", field, errs[field])
	}
	return errors.New("log not saved: fix the fields above")
}

func isActiveProject(projects []models.Project, id string) bool {
	for _, p := range projects {
		if p.ID.String() == id {
			return true
		}
	}
	return false
}

// parseChanges checks every flag before anything is fetched, so typing mistakes cost
// no network round-trip.
func parseChanges(fl *pflag.FlagSet, f *editFlags, loc *time.Location, readFile func(string) ([]byte, error)) (changes, error) {
	var ch changes
	if loc == nil {
		loc = time.Local
	}

	if fl.Changed("date") {
		d, err := time.ParseInLocation("2006-01-02", f.date, loc)
		if err != nil {
			return ch, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", f.date)
		}
		ch.date = &d
	}
	if fl.Changed("project") {
		ch.project = &f.project
	}
	if fl.Changed("employee") {
		ch.employees = append([]string{}, f.employees...)
	}
	if fl.Changed("start") {
		s, err := clock.ParseLabel(f.start)
		if err != nil {
			return ch, fmt.Errorf("invalid --start: %w", err)
		}
		ch.start = &s
	}
	if fl.Changed("end") {
		s, err := clock.ParseLabel(f.end)
		if err != nil {
			return ch, fmt.Errorf("invalid --end: %w", err)
		}
		ch.end = &s
	}
	if fl.Changed("description") {
		ch.description = &f.description
	}
	for _, path := range f.photos {
		data, err := readFile(path)
		if err != nil {
			return ch, fmt.Errorf("reading photo: %w", err)
		}
		ch.photos = append(ch.photos, models.PhotoFile{
			Name:        filepath.Base(path),
			ContentType: mimetype.Detect(data).String(),
			Data:        data,
		})
	}
	return ch, nil
}

// actionsFor turns the requested changes into editor actions against the loaded draft.
// A given employee list replaces the roster: existing entries are overwritten in place,
// missing ones appended and surplus ones removed from the end.
func actionsFor(d models.LogDraft, ch changes) []editor.Action {
	var actions []editor.Action

	if ch.date != nil {
		actions = append(actions, editor.SetDate{Date: *ch.date})
	}
	if ch.project != nil {
		actions = append(actions, editor.SetProject{ProjectID: *ch.project})
	}
	if ch.employees != nil {
		size := len(d.Employees)
		for i, name := range ch.employees {
			if i >= size {
				actions = append(actions, editor.AddEmployee{})
				size++
			}
			actions = append(actions, editor.SetEmployeeAt{Index: i, Value: name})
		}
		for i := size - 1; i >= len(ch.employees) && i > 0; i-- {
			actions = append(actions, editor.RemoveEmployeeAt{Index: i})
		}
		if len(ch.employees) == 0 {
			actions = append(actions, editor.SetEmployeeAt{Index: 0, Value: ""})
		}
	}
	if ch.start != nil {
		actions = append(actions, editor.SetStartTime{Slot: *ch.start})
	}
	if ch.end != nil {
		actions = append(actions, editor.SetEndTime{Slot: *ch.end})
	}
	if ch.description != nil {
		actions = append(actions, editor.SetDescription{Text: *ch.description})
	}
	if len(ch.photos) > 0 {
		actions = append(actions, editor.AddPhotoFiles{Files: ch.photos})
	}
	return actions
}
