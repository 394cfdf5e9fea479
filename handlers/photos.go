package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"dailylog/database"
	"dailylog/middleware"
	"dailylog/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// PhotosField is the multipart field that carries uploaded photos.
const PhotosField = "photos"

// UploadPhotos stores the photos of a multipart request against an existing log.
// Every part is sniffed; the declared content type is not trusted. The request is
// rejected as a whole if any part is not an image.
func UploadPhotos(store AttachmentStore, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		logID, ok := parseIDParam(c, "log")
		if !ok {
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("upload exceeds %d bytes", maxBytes)})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		form, err := c.MultipartForm()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("upload exceeds %d bytes", maxBytes)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}

		headers := form.File[PhotosField]
		if len(headers) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no photos in field " + PhotosField})
			return
		}

		files := make([]database.NewAttachment, 0, len(headers))
		for _, fh := range headers {
			file, err := readPhoto(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			files = append(files, file)
		}

		stored, err := store.InsertAttachmentsBatch(c.Request.Context(), logID, files)
		if err != nil {
			var batchErr *database.BatchInsertError
			if errors.As(err, &batchErr) {
				respondStoreError(c, err, fmt.Sprintf("failed to store photo %d of %d", batchErr.FailedIndex+1, batchErr.Total))
				return
			}
			respondStoreError(c, err, "failed to store photos")
			return
		}

		c.Set(middleware.PhotosStoredKey, len(stored))
		c.JSON(http.StatusCreated, gin.H{
			"photos": stored,
			"count":  len(stored),
		})
	}
}

func readPhoto(fh *multipart.FileHeader) (database.NewAttachment, error) {
	f, err := fh.Open()
	if err != nil {
		return database.NewAttachment{}, fmt.Errorf("failed to read %s", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return database.NewAttachment{}, fmt.Errorf("failed to read %s", fh.Filename)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return database.NewAttachment{}, fmt.Errorf("%s is not an image (%s)", fh.Filename, mt.String())
	}

	return database.NewAttachment{
		Kind:        models.KindPhoto,
		Filename:    fh.Filename,
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

// GetAttachment streams the stored content of a photo or document.
func GetAttachment(store AttachmentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "attachment")
		if !ok {
			return
		}

		meta, data, err := store.GetAttachment(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err, "failed to get attachment")
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", meta.Filename))
		c.Data(http.StatusOK, meta.ContentType, data)
	}
}
