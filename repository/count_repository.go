package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
)

type GormCountRepository struct {
	db *gorm.DB
}

func NewGormCountRepository(db *gorm.DB) CountRepository {
	return &GormCountRepository{db: db}
}

// AppendBatch inserts one row per sample. The ledger is append-only: existing
// rows are never touched, and the submitted peak values are stored as-is.
func (r *GormCountRepository) AppendBatch(counts []models.ZoneCount) error {
	if r.db == nil {
		return database.ErrUnavailable
	}
	if len(counts) == 0 {
		return nil
	}
	now := time.Now().Unix()
	for i := range counts {
		counts[i].ID = 0
		if counts[i].CreatedAt == 0 {
			counts[i].CreatedAt = now
		}
	}
	if err := r.db.Create(&counts).Error; err != nil {
		return fmt.Errorf("failed to append %d count samples: %w", len(counts), err)
	}
	return nil
}

func (r *GormCountRepository) ListByVideo(videoID uint) ([]models.ZoneCount, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var counts []models.ZoneCount
	err := r.db.Where("video_id = ?", videoID).Order("id ASC").Find(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list counts for video %d: %w", videoID, err)
	}
	return counts, nil
}
