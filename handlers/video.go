package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/config"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/repository"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/utils"
)

const maxUploadBytes = 512 << 20

type VideoHandler struct {
	Videos repository.VideoRepository
	Cfg    config.Config
}

func NewVideoHandler(videos repository.VideoRepository, cfg config.Config) *VideoHandler {
	return &VideoHandler{Videos: videos, Cfg: cfg}
}

type uploadResponse struct {
	OK       bool   `json:"ok"`
	Filename string `json:"filename"`
	ID       *uint  `json:"id,omitempty"`
}

// Upload stores the submitted video on disk under a timestamp-prefixed name,
// then mirrors the bytes and metadata into the relational catalog. The mirror
// is best effort: if the store is down the upload still succeeds and no video
// id is produced.
func (vh *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("video")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "missing_file", "No file")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(vh.Cfg.UploadsPath, 0755); err != nil {
		log.Printf("Error creating uploads directory %s: %v", vh.Cfg.UploadsPath, err)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to store upload")
		return
	}

	storedName := utils.UniqueUploadName(header.Filename)
	destPath := filepath.Join(vh.Cfg.UploadsPath, storedName)
	dst, err := os.Create(destPath)
	if err != nil {
		log.Printf("Error creating upload file %s: %v", destPath, err)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to store upload")
		return
	}
	size, err := io.Copy(dst, file)
	closeErr := dst.Close()
	if err != nil || closeErr != nil {
		os.Remove(destPath)
		log.Printf("Error writing upload file %s: copy=%v close=%v", destPath, err, closeErr)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to store upload")
		return
	}

	resp := uploadResponse{OK: true, Filename: storedName}

	// mirror bytes into the catalog; the disk copy above is the one the
	// player streams from, the inline copy serves fetch-video-blob
	data, err := os.ReadFile(destPath)
	if err != nil {
		log.Printf("Error reading back upload %s for catalog mirror: %v", destPath, err)
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	var mimeType *string
	if ct := header.Header.Get("Content-Type"); ct != "" {
		mimeType = &ct
	}
	video := &models.Video{
		UserID:       CurrentUserID(r),
		Filename:     storedName,
		FilePath:     &destPath,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		SizeBytes:    size,
		Data:         data,
	}
	if err := vh.Videos.Create(video); err != nil {
		// upload flow must keep working without the relational store
		log.Printf("Video catalog insert degraded for %s: %v", storedName, err)
	} else {
		resp.ID = &video.ID
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ListMine returns the caller's uploads, newest first.
func (vh *VideoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID := CurrentUserID(r)
	summaries, err := vh.Videos.ListByOwner(*ownerID)
	if err != nil {
		log.Printf("Video listing degraded for owner %d: %v", *ownerID, err)
		summaries = []models.VideoSummary{}
	}
	if summaries == nil {
		summaries = []models.VideoSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Content serves the inline blob copy of a video from the relational store.
func (vh *VideoHandler) Content(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "video_id"), 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid video id")
		return
	}

	video, err := vh.Videos.GetContent(uint(id))
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			WriteAPIError(w, http.StatusServiceUnavailable, "db_unavailable", "Database not configured")
			return
		}
		WriteAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	mimeType := "application/octet-stream"
	if video.MimeType != nil && *video.MimeType != "" {
		mimeType = *video.MimeType
	}
	displayName := video.OriginalName
	if displayName == "" {
		displayName = "video"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", displayName))
	w.Write(video.Data)
}

// Delete removes one of the caller's videos; its zones and count samples go
// with it.
func (vh *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "video_id"), 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid video id")
		return
	}

	video, err := vh.Videos.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "not found")
			return
		}
		WriteAPIError(w, http.StatusServiceUnavailable, "db_unavailable", "Database not configured")
		return
	}

	ownerID := CurrentUserID(r)
	if video.UserID == nil || *video.UserID != *ownerID {
		WriteAPIError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	if err := vh.Videos.Delete(video.ID); err != nil {
		log.Printf("Error deleting video %d: %v", video.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
