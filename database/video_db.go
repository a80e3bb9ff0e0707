package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// InsertVideoLegacy inserts a video row without the file_path column. It is
// the fallback write path for installations whose videos table predates that
// column; the on-disk path is simply not recorded there.
func InsertVideoLegacy(db *sql.DB, video *models.Video) (int64, error) {
	queryBuilder := psql.Insert("videos").
		Columns("user_id", "filename", "original_name", "mime_type", "size_bytes", "data", "created_at").
		Values(video.UserID, video.Filename, video.OriginalName, video.MimeType, video.SizeBytes, video.Data, video.CreatedAt).
		Suffix("RETURNING id")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for InsertVideoLegacy: %w", err)
	}

	var videoID int64
	err = db.QueryRow(sqlStr, args...).Scan(&videoID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute InsertVideoLegacy for %s: %w", video.Filename, err)
	}

	return videoID, nil
}
