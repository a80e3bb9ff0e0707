package models

// Video represents one uploaded asset. The raw bytes live twice: on disk under
// the uploads directory and inline in the Data column. Rows are never updated
// after creation; deleting a video removes its zones and count samples with it.
type Video struct {
	ID           uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       *uint   `json:"user_id,omitempty" gorm:"index"` // Nullable: unauthenticated uploads are allowed
	Filename     string  `json:"filename" gorm:"not null;index"`
	FilePath     *string `json:"file_path,omitempty" gorm:"column:file_path"` // Nullable: absent on older-schema installs
	OriginalName string  `json:"original_name" gorm:"not null"`
	MimeType     *string `json:"mime_type,omitempty"`
	SizeBytes    int64   `json:"size_bytes"`
	Data         []byte  `json:"-" gorm:"type:blob"`
	CreatedAt    int64   `json:"created_at" gorm:"not null"` // Unix timestamp

	Zones  []VideoZone `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Counts []ZoneCount `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (Video) TableName() string {
	return "videos"
}

// VideoSummary is the listing shape returned for an owner's uploads.
type VideoSummary struct {
	ID           uint   `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
	CreatedAt    int64  `json:"created_at"`
}
