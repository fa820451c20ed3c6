package repository

import (
	"github.com/mkramos/gamestore-backend/internal/app/model"
	"gorm.io/gorm"
)

type MediaRepository interface {
	Create(asset *model.MediaAsset) error
	FindByGame(gameID uint) ([]model.MediaAsset, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(asset *model.MediaAsset) error {
	return r.db.Create(asset).Error
}

func (r *mediaRepository) FindByGame(gameID uint) ([]model.MediaAsset, error) {
	var assets []model.MediaAsset
	err := r.db.Where("game_id = ?", gameID).
		Order("field ASC, position ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}
