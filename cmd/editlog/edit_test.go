package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"dailylog/clock"
	"dailylog/config"
	"dailylog/editor"
	"dailylog/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memStore struct {
	record     models.DailyLog
	projects   []models.Project
	updates    []models.UpdateLogRequest
	uploads    [][]models.PhotoFile
	uploadErrs []error
}

func (m *memStore) FetchLog(_ context.Context, id string) (*models.DailyLog, error) {
	if id != m.record.ID.String() {
		return nil, errors.New("api error 404: not found")
	}
	rec := m.record
	rec.Employees = append([]string(nil), m.record.Employees...)
	return &rec, nil
}

func (m *memStore) UpdateLog(_ context.Context, _ string, req models.UpdateLogRequest) error {
	m.updates = append(m.updates, req)
	return nil
}

func (m *memStore) ListActiveProjects(context.Context) ([]models.Project, error) {
	return m.projects, nil
}

func (m *memStore) UploadPhotos(_ context.Context, _ string, files []models.PhotoFile) error {
	m.uploads = append(m.uploads, files)
	if len(m.uploadErrs) > 0 {
		err := m.uploadErrs[0]
		m.uploadErrs = m.uploadErrs[1:]
		return err
	}
	return nil
}

var (
	_ editor.LogStore        = (*memStore)(nil)
	_ editor.ProjectCatalog  = (*memStore)(nil)
	_ editor.AttachmentStore = (*memStore)(nil)
)

func newTestApp(t *testing.T) (*app, *memStore, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	harbour := models.Project{ID: uuid.New(), Name: "Harbour", Active: true}
	quay := models.Project{ID: uuid.New(), Name: "Quay", Active: true}
	store := &memStore{
		record: models.DailyLog{
			ID:              uuid.New(),
			Date:            day,
			ProjectID:       harbour.ID.String(),
			ProjectName:     harbour.Name,
			Employees:       []string{"Ana", "Ben", "Cleo"},
			StartTime:       day.Add(8 * time.Hour),
			EndTime:         day.Add(16*time.Hour + 30*time.Minute),
			WorkDescription: "Formwork",
			Status:          models.StatusSubmitted,
			Photos:          []models.Attachment{{ID: uuid.New()}},
		},
		projects: []models.Project{harbour, quay},
	}

	var out, errOut bytes.Buffer
	files := map[string][]byte{"site.png": pngData}
	a := &app{
		out:         &out,
		errOut:      &errOut,
		cfg:         config.Client{Location: time.UTC, SelectProject: true},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		logs:        store,
		projects:    store,
		attachments: store,
		readFile: func(path string) ([]byte, error) {
			name := path[strings.LastIndex(path, "/")+1:]
			if data, ok := files[name]; ok {
				return data, nil
			}
			return nil, errors.New("no such file")
		},
	}
	return a, store, &out, &errOut
}

func run(a *app, args ...string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestSlotsCommand(t *testing.T) {
	a, _, out, _ := newTestApp(t)
	require.NoError(t, run(a, "slots"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, clock.SlotsPerDay)
	assert.Equal(t, "00:00", lines[0])
	assert.Equal(t, "23:45", lines[len(lines)-1])
}

func TestShowCommand(t *testing.T) {
	a, store, out, _ := newTestApp(t)
	require.NoError(t, run(a, "show", store.record.ID.String()))

	text := out.String()
	assert.Contains(t, text, "2024-03-14")
	assert.Contains(t, text, "Harbour ("+store.record.ProjectID+")")
	assert.Contains(t, text, "Ana, Ben, Cleo")
	assert.Contains(t, text, "16:30")
	assert.Contains(t, text, "8h 30m")
	assert.Contains(t, text, "Photos:       1")
}

func TestShowCommand_JSON(t *testing.T) {
	a, store, out, _ := newTestApp(t)
	require.NoError(t, run(a, "show", "--json", store.record.ID.String()))

	var draft map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &draft))
	assert.Equal(t, "Formwork", draft["workDescription"])
	assert.Equal(t, store.record.ProjectID, draft["projectId"])
}

func TestShowCommand_LoadFailure(t *testing.T) {
	a, _, _, errOut := newTestApp(t)
	err := run(a, "show", uuid.New().String())

	var loadErr *editor.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, errOut.String(), editor.MsgLoadFailed)
}

func TestEditCommand(t *testing.T) {
	a, store, out, errOut := newTestApp(t)
	quay := store.projects[1]

	err := run(a, "edit", store.record.ID.String(),
		"--date", "2024-03-15",
		"--project", quay.ID.String(),
		"--employee", "Dana",
		"--employee", "  ",
		"--start", "07:15",
		"--end", "15:45",
		"--description", "Decking",
		"--photo", "/tmp/site.png",
	)
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	req := store.updates[0]
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, req.Date.Equal(day))
	assert.Equal(t, quay.ID.String(), req.ProjectID)
	assert.Equal(t, []string{"Dana"}, req.Employees)
	assert.True(t, req.StartTime.Equal(day.Add(7*time.Hour+15*time.Minute)))
	assert.True(t, req.EndTime.Equal(day.Add(15*time.Hour+45*time.Minute)))
	assert.Equal(t, "Decking", req.WorkDescription)
	assert.Equal(t, models.StatusSubmitted, req.Status)

	require.Len(t, store.uploads, 1)
	assert.Equal(t, "site.png", store.uploads[0][0].Name)
	assert.Equal(t, "image/png", store.uploads[0][0].ContentType)

	assert.Contains(t, out.String(), "Updated log "+store.record.ID.String())
	assert.Contains(t, out.String(), "Uploaded 1 photo(s)")
	assert.Contains(t, errOut.String(), editor.MsgUpdated)
}

func TestEditCommand_FlagErrorsSkipNetwork(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad date", []string{"--date", "15/03/2024"}, "invalid --date"},
		{"off-grid start", []string{"--start", "07:10"}, "invalid --start"},
		{"bad end", []string{"--end", "25:00"}, "invalid --end"},
		{"missing photo", []string{"--photo", "/tmp/missing.png"}, "reading photo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, store, _, _ := newTestApp(t)
			err := run(a, append([]string{"edit", store.record.ID.String()}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, store.updates)
		})
	}
}

func TestEditCommand_ValidationFailure(t *testing.T) {
	a, store, _, errOut := newTestApp(t)

	err := run(a, "edit", store.record.ID.String(), "--description", "   ", "--employee", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log not saved")
	assert.Empty(t, store.updates)
	assert.Contains(t, errOut.String(), "workDescription: Work description is required")
}

func TestEditCommand_StrictEmployees(t *testing.T) {
	a, store, _, errOut := newTestApp(t)

	err := run(a, "edit", store.record.ID.String(), "--strict-employees", "--employee", "Ana", "--employee", " ")
	require.Error(t, err)
	assert.Empty(t, store.updates)
	assert.Contains(t, errOut.String(), "employees:")
}

func TestEditCommand_InactiveProject(t *testing.T) {
	a, store, _, _ := newTestApp(t)

	err := run(a, "edit", store.record.ID.String(), "--project", uuid.New().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an active project")
	assert.Empty(t, store.updates)
}

func TestEditCommand_UploadRetry(t *testing.T) {
	a, store, out, _ := newTestApp(t)
	store.uploadErrs = []error{errors.New("timeout"), errors.New("timeout")}

	err := run(a, "edit", store.record.ID.String(), "--photo", "site.png", "--retry-upload", "1")
	var uploadErr *editor.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Len(t, store.updates, 1)
	assert.Len(t, store.uploads, 2)
	assert.NotContains(t, out.String(), "Updated log")

	a, store, out, _ = newTestApp(t)
	store.uploadErrs = []error{errors.New("timeout")}
	require.NoError(t, run(a, "edit", store.record.ID.String(), "--photo", "site.png", "--retry-upload", "2"))
	assert.Len(t, store.updates, 1)
	assert.Len(t, store.uploads, 2)
	assert.Contains(t, out.String(), "Updated log")
}

func TestEditCommand_DryRun(t *testing.T) {
	a, store, out, _ := newTestApp(t)

	require.NoError(t, run(a, "edit", store.record.ID.String(), "--status", "draft", "--dry-run"))
	assert.Empty(t, store.updates)

	var payload models.UpdateLogRequest
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, models.StatusDraft, payload.Status)
	assert.Equal(t, []string{"Ana", "Ben", "Cleo"}, payload.Employees)
}

func TestEditCommand_UnknownStatus(t *testing.T) {
	a, store, _, _ := newTestApp(t)
	err := run(a, "edit", store.record.ID.String(), "--status", "archived")
	require.Error(t, err)
	assert.Empty(t, store.updates)
}

func TestActionsFor_Employees(t *testing.T) {
	base := models.LogDraft{}

	tests := []struct {
		name    string
		current []string
		names   []string
		want    []string
	}{
		{"shrink", []string{"Ana", "Ben", "Cleo"}, []string{"Dana"}, []string{"Dana"}},
		{"grow", []string{"Ana"}, []string{"Ana", "Ben", "Cleo"}, []string{"Ana", "Ben", "Cleo"}},
		{"same size", []string{"Ana", "Ben"}, []string{"Cleo", "Dana"}, []string{"Cleo", "Dana"}},
		{"clear", []string{"Ana", "Ben"}, []string{}, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base.Clone()
			d.Employees = append(d.Employees[:0:0], tt.current...)
			for _, action := range actionsFor(d, changes{employees: tt.names}) {
				d = editor.Reduce(d, action, editor.Options{})
			}
			assert.Equal(t, tt.want, []string(d.Employees))
		})
	}
}

func TestZonedLogs(t *testing.T) {
	_, store, _, _ := newTestApp(t)
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	z := zonedLogs{LogStore: store, loc: berlin}
	rec, err := z.FetchLog(context.Background(), store.record.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 14, rec.Date.Day())
	assert.Equal(t, 0, rec.Date.Hour())
	assert.Equal(t, berlin, rec.Date.Location())
	assert.Equal(t, 9, rec.StartTime.Hour())
	assert.True(t, rec.StartTime.Equal(store.record.StartTime))
}
