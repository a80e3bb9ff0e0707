package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
)

type GormZoneRepository struct {
	db *gorm.DB
}

func NewGormZoneRepository(db *gorm.DB) ZoneRepository {
	return &GormZoneRepository{db: db}
}

// ReplaceForVideo deletes every existing zone for the video and inserts the
// supplied set inside a single transaction. Readers either see the old set or
// the new one, never a mixture; concurrent replacements resolve to whichever
// transaction commits last.
func (r *GormZoneRepository) ReplaceForVideo(videoID uint, zones []models.VideoZone) (int, error) {
	if r.db == nil {
		return 0, database.ErrUnavailable
	}

	now := time.Now().Unix()
	inserted := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoID).Delete(&models.VideoZone{}).Error; err != nil {
			return err
		}
		for i := range zones {
			zones[i].ID = 0
			zones[i].VideoID = videoID
			if zones[i].CreatedAt == 0 {
				zones[i].CreatedAt = now
			}
			if err := tx.Create(&zones[i]).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace zones for video %d: %w", videoID, err)
	}
	return inserted, nil
}

func (r *GormZoneRepository) ListByVideo(videoID uint) ([]models.VideoZone, error) {
	if r.db == nil {
		return nil, database.ErrUnavailable
	}
	var zones []models.VideoZone
	err := r.db.Where("video_id = ?", videoID).Order("id ASC").Find(&zones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list zones for video %d: %w", videoID, err)
	}
	return zones, nil
}
