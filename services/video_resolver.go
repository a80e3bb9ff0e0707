package services

import (
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/repository"
)

// ResolutionStatus reports how (and whether) a target video was determined.
type ResolutionStatus int

const (
	// ResolutionNone means no video could be determined; writes that need a
	// video association are silently skipped.
	ResolutionNone ResolutionStatus = iota
	// ResolutionResolved means the filename hint matched a catalog entry.
	ResolutionResolved
	// ResolutionAmbiguous means the latest-for-owner fallback was used. The
	// result is deterministic for the catalog state at hand, but a caller
	// racing with a second upload by the same owner may attach to the wrong
	// video. That ambiguity is accepted behavior.
	ResolutionAmbiguous
)

// Resolution is the outcome of mapping a caller identity and filename hint to
// a video id. VideoID is only meaningful when Status is not ResolutionNone.
type Resolution struct {
	VideoID uint
	Status  ResolutionStatus
}

// VideoResolver turns (callerOwnerID?, filenameHint?) into a video id for
// zone-set and count-ledger writes.
type VideoResolver struct {
	Videos repository.VideoRepository
}

func NewVideoResolver(videos repository.VideoRepository) *VideoResolver {
	return &VideoResolver{Videos: videos}
}

// Resolve applies the lookup order: filename match first, then the owner's
// most recent upload, then nothing. First match wins. Repository failures are
// treated as a missed match, never surfaced.
func (vr *VideoResolver) Resolve(ownerID *uint, filenameHint string) Resolution {
	if filenameHint != "" {
		if video, err := vr.Videos.FindByFilenameForOwner(filenameHint, ownerID); err == nil {
			return Resolution{VideoID: video.ID, Status: ResolutionResolved}
		}
	}
	if ownerID != nil {
		if video, err := vr.Videos.LatestForOwner(*ownerID); err == nil {
			return Resolution{VideoID: video.ID, Status: ResolutionAmbiguous}
		}
	}
	return Resolution{Status: ResolutionNone}
}
