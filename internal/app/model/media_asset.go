package model

import "time"

// MediaField names the game field a media asset is attached to
type MediaField string

const (
	MediaFieldCover   MediaField = "cover"
	MediaFieldGallery MediaField = "gallery"
)

// MediaAsset is one uploaded image bound to a persisted game. Assets are
// created once, right after the owning game, and carry the object storage
// key alongside the public URL.
type MediaAsset struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	GameID    uint       `gorm:"index;not null" json:"game_id"`
	Field     MediaField `gorm:"type:varchar(16);not null" json:"field"`
	Position  int        `gorm:"default:0" json:"position"`
	Key       string     `gorm:"type:varchar(512)" json:"key"`
	URL       string     `gorm:"type:varchar(1024)" json:"url"`
	CreatedAt time.Time  `json:"created_at"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}
