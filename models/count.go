package models

// ZoneCount is one occupancy observation for a zone of a video. Rows are
// append-only: they are never updated or removed except by cascade when the
// owning video is deleted. ZoneID matches a VideoZone's zone_id by string only;
// there is no referential constraint between the two tables. Label is a
// snapshot taken at sample time and may drift from the zone's current label.
// Peak is trusted as submitted; this layer does not recompute it.
type ZoneCount struct {
	ID      uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	VideoID uint    `json:"video_id" gorm:"not null;index"`
	ZoneID  string  `json:"zone_id" gorm:"column:zone_id;not null;index"`
	TS      float64 `json:"ts" gorm:"column:ts;not null;index"` // seconds since epoch
	Label   string  `json:"label" gorm:"not null"`
	Current int     `json:"current" gorm:"column:current;not null"`
	Peak    int     `json:"peak" gorm:"column:peak;not null"`

	CreatedAt int64 `json:"created_at" gorm:"not null"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (ZoneCount) TableName() string {
	return "zone_counts"
}
