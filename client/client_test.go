package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dailylog/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "dwl_client_test"

type received struct {
	auth    string
	update  models.UpdateLogRequest
	files   map[string][]byte
	types   map[string]string
	queries []string
}

func newServer(t *testing.T) (*httptest.Server, *received, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logID := uuid.New()
	projectID := uuid.New()
	got := &received{files: map[string][]byte{}, types: map[string]string{}}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		got.auth = c.GetHeader("Authorization")
		c.Next()
	})
	r.GET("/logs/:id", func(c *gin.Context) {
		if c.Param("id") != logID.String() {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
		c.JSON(http.StatusOK, models.DailyLog{
			ID:              logID,
			Date:            day,
			ProjectID:       projectID.String(),
			ProjectName:     "Harbour",
			Employees:       []string{"Ana"},
			StartTime:       day.Add(8 * time.Hour),
			EndTime:         day.Add(16 * time.Hour),
			WorkDescription: "Formwork",
			Status:          models.StatusDraft,
			Photos:          []models.Attachment{{ID: uuid.New(), Kind: models.KindPhoto, Filename: "a.png"}},
		})
	})
	r.PUT("/logs/:id", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&got.update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})
	r.GET("/projects", func(c *gin.Context) {
		got.queries = append(got.queries, c.Request.URL.RawQuery)
		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: []models.Project{{ID: projectID, Name: "Harbour", Active: true}},
			Total:    1,
		})
	})
	r.POST("/logs/:id/photos", func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}
		for _, fh := range form.File["photos"] {
			f, err := fh.Open()
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			data, _ := io.ReadAll(f)
			f.Close()
			got.files[fh.Filename] = data
			got.types[fh.Filename] = fh.Header.Get("Content-Type")
		}
		c.JSON(http.StatusCreated, gin.H{"count": len(form.File["photos"])})
	})
	r.POST("/logs/:id/fail", func(c *gin.Context) {
		c.String(http.StatusBadGateway, "upstream down")
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, got, logID
}

func TestFetchLog(t *testing.T) {
	srv, got, logID := newServer(t)
	c := New(srv.URL+"/", WithToken(token))

	entry, err := c.FetchLog(context.Background(), logID.String())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, got.auth)
	assert.Equal(t, "Harbour", entry.ProjectName)
	assert.Equal(t, []string{"Ana"}, entry.Employees)
	require.Len(t, entry.Photos, 1)

	_, err = c.FetchLog(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestUpdateLog(t *testing.T) {
	srv, got, logID := newServer(t)
	c := New(srv.URL, WithToken(token))

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	req := models.UpdateLogRequest{
		Date:            day,
		ProjectID:       uuid.New().String(),
		Employees:       []string{"Ana", "Ben"},
		StartTime:       day.Add(7 * time.Hour),
		EndTime:         day.Add(15 * time.Hour),
		WorkDescription: "Decking",
		Status:          models.StatusDraft,
	}
	require.NoError(t, c.UpdateLog(context.Background(), logID.String(), req))

	assert.Equal(t, []string{"Ana", "Ben"}, got.update.Employees)
	assert.True(t, got.update.Date.Equal(day))
	assert.True(t, got.update.StartTime.Equal(day.Add(7*time.Hour)))
}

func TestListActiveProjects(t *testing.T) {
	srv, got, _ := newServer(t)
	c := New(srv.URL, WithToken(token))

	projects, err := c.ListActiveProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Harbour", projects[0].Name)
	assert.Equal(t, []string{"active=true"}, got.queries)
}

func TestUploadPhotos(t *testing.T) {
	srv, got, logID := newServer(t)
	c := New(srv.URL, WithToken(token))

	err := c.UploadPhotos(context.Background(), logID.String(), []models.PhotoFile{
		{Name: "a.png", ContentType: "image/png", Data: []byte{1, 2}},
		{Name: "b.jpg", Data: []byte{3}},
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 2}, got.files["a.png"])
	assert.Equal(t, []byte{3}, got.files["b.jpg"])
	assert.Equal(t, "image/png", got.types["a.png"])
	assert.Equal(t, "application/octet-stream", got.types["b.jpg"])
}

func TestNonJSONError(t *testing.T) {
	srv, _, logID := newServer(t)
	c := New(srv.URL)

	err := c.do(context.Background(), http.MethodPost, c.endpoint(nil, "logs", logID.String(), "fail"), nil, "", nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestWithoutToken(t *testing.T) {
	srv, got, logID := newServer(t)
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	_, err := c.FetchLog(context.Background(), logID.String())
	require.NoError(t, err)
	assert.Empty(t, got.auth)
}
