package model

import (
	"time"

	"gorm.io/gorm"
)

// Game is one mirrored catalog entry. Games are create-only: a name that
// already exists in the store is never touched by subsequent catalog runs.
type Game struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug             string         `gorm:"type:varchar(255);index" json:"slug"`
	Price            float64        `json:"price"`
	ReleaseDate      time.Time      `json:"release_date"`
	Description      string         `gorm:"type:text" json:"description"`
	ShortDescription string         `gorm:"type:varchar(160)" json:"short_description"`
	Rating           string         `gorm:"type:varchar(16)" json:"rating"`
	PublishedAt      time.Time      `json:"published_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Categories []Category   `gorm:"many2many:game_categories" json:"categories,omitempty"`
	Platforms  []Platform   `gorm:"many2many:game_platforms" json:"platforms,omitempty"`
	Developers []Developer  `gorm:"many2many:game_developers" json:"developers,omitempty"`
	Publishers []Publisher  `gorm:"many2many:game_publishers" json:"publishers,omitempty"`
	Media      []MediaAsset `gorm:"foreignKey:GameID" json:"media,omitempty"`
}

func (Game) TableName() string {
	return "games"
}
