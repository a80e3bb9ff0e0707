package models

// VideoZone is one quadrilateral region of interest drawn over a video frame.
// ZoneID is caller-supplied and unique only within its video. The zone set for
// a video is always replaced as a unit; partial updates never occur.
type VideoZone struct {
	ID      uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	VideoID uint   `json:"video_id" gorm:"not null;index"`
	ZoneID  string `json:"zone_id" gorm:"column:zone_id;not null;index"`
	Label   string `json:"label" gorm:"not null"`

	TopLeftX     float64 `json:"topleft_x" gorm:"column:topleft_x;not null"`
	TopLeftY     float64 `json:"topleft_y" gorm:"column:topleft_y;not null"`
	TopRightX    float64 `json:"topright_x" gorm:"column:topright_x;not null"`
	TopRightY    float64 `json:"topright_y" gorm:"column:topright_y;not null"`
	BottomLeftX  float64 `json:"bottomleft_x" gorm:"column:bottomleft_x;not null"`
	BottomLeftY  float64 `json:"bottomleft_y" gorm:"column:bottomleft_y;not null"`
	BottomRightX float64 `json:"bottomright_x" gorm:"column:bottomright_x;not null"`
	BottomRightY float64 `json:"bottomright_y" gorm:"column:bottomright_y;not null"`

	CreatedAt int64 `json:"created_at" gorm:"not null"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (VideoZone) TableName() string {
	return "video_zones"
}
