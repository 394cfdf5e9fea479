package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"dailylog/database"
	"dailylog/models"

	"github.com/google/uuid"
)

const (
	testAPIKey     = "dwl_test"
	testAdminToken = "admin-secret"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu          sync.Mutex
	leader      models.TeamLeader
	projects    map[uuid.UUID]models.Project
	logs        map[uuid.UUID]models.DailyLog
	attachments map[uuid.UUID][]byte
	meta        map[uuid.UUID]models.Attachment
	listErr     error
	lastParams  models.LogQueryParams
	lastLeader  *uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leader:      models.TeamLeader{ID: uuid.New(), Name: "Sam"},
		projects:    map[uuid.UUID]models.Project{},
		logs:        map[uuid.UUID]models.DailyLog{},
		attachments: map[uuid.UUID][]byte{},
		meta:        map[uuid.UUID]models.Attachment{},
	}
}

func (f *fakeStore) addProject(name string, active bool) models.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Project{ID: uuid.New(), Name: name, Active: active}
	f.projects[p.ID] = p
	return p
}

func (f *fakeStore) addLog(projectID uuid.UUID) models.DailyLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	l := models.DailyLog{
		ID:              uuid.New(),
		Date:            day,
		ProjectID:       projectID.String(),
		ProjectName:     f.projects[projectID].Name,
		Employees:       []string{"Ana"},
		StartTime:       day.Add(8 * time.Hour),
		EndTime:         day.Add(16 * time.Hour),
		WorkDescription: "Formwork",
		Status:          models.StatusDraft,
		Photos:          []models.Attachment{},
		Documents:       []models.Attachment{},
	}
	f.logs[l.ID] = l
	return l
}

func (f *fakeStore) GetTeamLeaderByAPIKey(_ context.Context, apiKey string) (*models.TeamLeader, error) {
	if apiKey != testAPIKey {
		return nil, errors.New("invalid API key")
	}
	leader := f.leader
	return &leader, nil
}

func (f *fakeStore) CreateTeamLeader(_ context.Context, name string) (*models.TeamLeader, error) {
	return &models.TeamLeader{ID: uuid.New(), Name: name, APIKey: "dwl_new"}, nil
}

func (f *fakeStore) CreateLog(_ context.Context, teamLeaderID *uuid.UUID, req models.CreateLogRequest) (*models.DailyLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pid, _ := uuid.Parse(req.ProjectID)
	p, ok := f.projects[pid]
	if !ok {
		return nil, database.ErrUnknownProject
	}
	f.lastLeader = teamLeaderID
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	l := models.DailyLog{
		ID: uuid.New(), TeamLeaderID: teamLeaderID, Date: req.Date, ProjectID: req.ProjectID,
		ProjectName: p.Name, Employees: req.Employees, StartTime: req.StartTime, EndTime: req.EndTime,
		WorkDescription: req.WorkDescription, Status: status,
	}
	f.logs[l.ID] = l
	return &l, nil
}

func (f *fakeStore) GetLog(_ context.Context, id uuid.UUID) (*models.DailyLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.logs[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &l, nil
}

func (f *fakeStore) UpdateLog(_ context.Context, id uuid.UUID, req models.UpdateLogRequest) (*models.DailyLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.logs[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	pid, _ := uuid.Parse(req.ProjectID)
	p, ok := f.projects[pid]
	if !ok {
		return nil, database.ErrUnknownProject
	}
	l.Date, l.ProjectID, l.ProjectName = req.Date, req.ProjectID, p.Name
	l.Employees, l.StartTime, l.EndTime = req.Employees, req.StartTime, req.EndTime
	l.WorkDescription, l.Status = req.WorkDescription, req.Status
	f.logs[id] = l
	return &l, nil
}

func (f *fakeStore) ListLogs(_ context.Context, params models.LogQueryParams) ([]models.DailyLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastParams = params
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	logs := []models.DailyLog{}
	for _, l := range f.logs {
		logs = append(logs, l)
	}
	return logs, int64(len(logs)), nil
}

func (f *fakeStore) InsertAttachmentsBatch(_ context.Context, logID uuid.UUID, files []database.NewAttachment) ([]models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.logs[logID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		a := models.Attachment{
			ID: uuid.New(), LogID: logID, Kind: file.Kind, Filename: file.Filename,
			ContentType: file.ContentType, Size: int64(len(file.Data)),
		}
		a.URL = "/attachments/" + a.ID.String()
		f.meta[a.ID] = a
		f.attachments[a.ID] = file.Data
		stored = append(stored, a)
	}
	return stored, nil
}

func (f *fakeStore) GetAttachment(_ context.Context, id uuid.UUID) (*models.Attachment, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.meta[id]
	if !ok {
		return nil, nil, database.ErrNotFound
	}
	return &a, f.attachments[id], nil
}

func (f *fakeStore) CreateProject(_ context.Context, name string) (*models.Project, error) {
	p := f.addProject(name, true)
	return &p, nil
}

func (f *fakeStore) ListProjects(_ context.Context, activeOnly bool) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	projects := []models.Project{}
	for _, p := range f.projects {
		if activeOnly && !p.Active {
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

func (f *fakeStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) SetProjectActive(_ context.Context, id uuid.UUID, active bool) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.Active = active
	f.projects[id] = p
	return &p, nil
}

func (f *fakeStore) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return database.ErrNotFound
	}
	for _, l := range f.logs {
		if l.ProjectID == id.String() {
			return database.ErrProjectInUse
		}
	}
	delete(f.projects, id)
	return nil
}
