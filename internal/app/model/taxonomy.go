package model

import "time"

// TaxonomyKind names one of the four taxonomy tables
type TaxonomyKind string

const (
	KindCategory  TaxonomyKind = "category"
	KindPlatform  TaxonomyKind = "platform"
	KindDeveloper TaxonomyKind = "developer"
	KindPublisher TaxonomyKind = "publisher"
)

// Taxonomy entities are a unique name plus a derived slug. They are created
// once per distinct name and never updated afterwards.

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255)" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

type Platform struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255)" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Platform) TableName() string {
	return "platforms"
}

type Developer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255)" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Developer) TableName() string {
	return "developers"
}

type Publisher struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255)" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Publisher) TableName() string {
	return "publishers"
}
