package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
)

type GormVideoRepository struct {
	db *gorm.DB
}

func NewGormVideoRepository(db *gorm.DB) VideoRepository {
	return &GormVideoRepository{db: db}
}

// Create inserts a new video row. If the insert fails because the installation
// predates the file_path column, it retries through the reduced-column legacy
// path; only when that also fails does the caller see an error.
func (r *GormVideoRepository) Create(video *models.Video) error {
	if r.db == nil {
		return database.ErrUnavailable
	}
	if video.CreatedAt == 0 {
		video.CreatedAt = time.Now().Unix()
	}

	err := r.db.Create(video).Error
	if err == nil {
		return nil
	}

	sqlDB, dbErr := r.db.DB()
	if dbErr != nil {
		return fmt.Errorf("failed to create video %s: %w", video.Filename, err)
	}
	id, legacyErr := database.InsertVideoLegacy(sqlDB, video)
	if legacyErr != nil {
		return fmt.Errorf("failed to create video %s (legacy fallback also failed: %v): %w",
			video.Filename, legacyErr, database.ErrSchemaMismatch)
	}
	log.Printf("video insert fell back to legacy path (no file_path column) for %s", video.Filename)
	video.ID = uint(id)
	return nil
}

func (r *GormVideoRepository) GetByID(id uint) (*models.Video, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var video models.Video
	err := r.db.Omit("data").First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get video by ID %d: %w", id, err)
	}
	return &video, nil
}

// FindByFilenameForOwner scopes the match to ownerID when present; a nil
// ownerID matches videos of any owner. Among duplicate filenames the newest
// id wins.
func (r *GormVideoRepository) FindByFilenameForOwner(filename string, ownerID *uint) (*models.Video, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var video models.Video
	query := r.db.Omit("data").Where("filename = ?", filename)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	err := query.Order("id DESC").First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find video by filename %s: %w", filename, err)
	}
	return &video, nil
}

func (r *GormVideoRepository) LatestForOwner(ownerID uint) (*models.Video, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var video models.Video
	err := r.db.Omit("data").Where("user_id = ?", ownerID).Order("id DESC").First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get latest video for owner %d: %w", ownerID, err)
	}
	return &video, nil
}

func (r *GormVideoRepository) ListByOwner(ownerID uint) ([]models.VideoSummary, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var summaries []models.VideoSummary
	err := r.db.Model(&models.Video{}).
		Select("id", "filename", "original_name", "size_bytes", "created_at").
		Where("user_id = ?", ownerID).
		Order("id DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list videos for owner %d: %w", ownerID, err)
	}
	return summaries, nil
}

// GetContent returns the row including the inline blob. Videos that were
// registered while the relational store was down, or before blob storage
// existed, have no blob and report not-found.
func (r *GormVideoRepository) GetContent(id uint) (*models.Video, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var video models.Video
	err := r.db.First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get video content for ID %d: %w", id, err)
	}
	if len(video.Data) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &video, nil
}

// Delete removes a video together with its zones and count samples in one
// transaction so neither is ever orphaned.
func (r *GormVideoRepository) Delete(id uint) error {
	if r.db == nil {
		return database.ErrUnavailable
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&models.ZoneCount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.VideoZone{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
}
