package repository

import (
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
)

// UserRepository defines the methods for user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// VideoRepository defines the methods for video catalog operations
type VideoRepository interface {
	Create(video *models.Video) error
	GetByID(id uint) (*models.Video, error)
	// FindByFilenameForOwner matches the stored filename scoped to the given
	// owner, or to any owner when ownerID is nil. Among duplicates the newest
	// id wins.
	FindByFilenameForOwner(filename string, ownerID *uint) (*models.Video, error)
	// LatestForOwner returns the most recently registered video owned by ownerID.
	LatestForOwner(ownerID uint) (*models.Video, error)
	ListByOwner(ownerID uint) ([]models.VideoSummary, error)
	// GetContent returns the row including the inline blob copy; videos
	// registered without one report not-found.
	GetContent(id uint) (*models.Video, error)
	Delete(id uint) error
}

// ZoneRepository defines the methods for per-video zone set operations
type ZoneRepository interface {
	// ReplaceForVideo atomically swaps the whole zone set for a video and
	// returns the number of zones inserted.
	ReplaceForVideo(videoID uint, zones []models.VideoZone) (int, error)
	ListByVideo(videoID uint) ([]models.VideoZone, error)
}

// CountRepository defines the methods for the append-only occupancy ledger
type CountRepository interface {
	AppendBatch(counts []models.ZoneCount) error
	ListByVideo(videoID uint) ([]models.ZoneCount, error)
}
