package repository

import (
	"errors"
	"fmt"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"gorm.io/gorm"
)

type GameSort string

const (
	GameSortReleaseDate GameSort = "release_date"
	GameSortName        GameSort = "name"
	GameSortPrice       GameSort = "price"
	GameSortCreatedAt   GameSort = "created_at"
)

type GameFilter struct {
	Category      string // category slug
	Platform      string // platform slug
	Developer     string // developer slug
	Publisher     string // publisher slug
	Search        string
	SortBy        GameSort
	SortAscending bool
	Limit         int
	Offset        int
}

// GameRepository persists mirrored games. FindByName returns (nil, nil) when
// no game with that exact name exists.
type GameRepository interface {
	Create(game *model.Game) error
	FindByName(name string) (*model.Game, error)
	FindBySlug(slug string) (*model.Game, error)
	FindWithFilter(filter GameFilter) ([]model.Game, error)
	Count() (int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(game *model.Game) error {
	logger.Debug("Creating game in database", map[string]interface{}{
		"name": game.Name,
		"slug": game.Slug,
	})

	if err := r.db.Create(game).Error; err != nil {
		logger.Error("Failed to create game in database", err, map[string]interface{}{
			"name": game.Name,
		})
		return err
	}
	return nil
}

func (r *gameRepository) FindByName(name string) (*model.Game, error) {
	var game model.Game
	err := r.db.Where("name = ?", name).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindBySlug(slug string) (*model.Game, error) {
	var game model.Game
	err := r.baseQuery().Where("games.slug = ?", slug).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindWithFilter(filter GameFilter) ([]model.Game, error) {
	query := r.baseQuery()

	if filter.Category != "" {
		query = query.
			Joins("JOIN game_categories ON game_categories.game_id = games.id").
			Joins("JOIN categories ON categories.id = game_categories.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Platform != "" {
		query = query.
			Joins("JOIN game_platforms ON game_platforms.game_id = games.id").
			Joins("JOIN platforms ON platforms.id = game_platforms.platform_id").
			Where("platforms.slug = ?", filter.Platform)
	}
	if filter.Developer != "" {
		query = query.
			Joins("JOIN game_developers ON game_developers.game_id = games.id").
			Joins("JOIN developers ON developers.id = game_developers.developer_id").
			Where("developers.slug = ?", filter.Developer)
	}
	if filter.Publisher != "" {
		query = query.
			Joins("JOIN game_publishers ON game_publishers.game_id = games.id").
			Joins("JOIN publishers ON publishers.id = game_publishers.publisher_id").
			Where("publishers.slug = ?", filter.Publisher)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("games.name LIKE ? OR games.short_description LIKE ?", like, like)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	switch filter.SortBy {
	case GameSortName:
		query = query.Order("games.name " + direction)
	case GameSortPrice:
		query = query.Order("games.price " + direction)
	case GameSortCreatedAt:
		query = query.Order("games.created_at " + direction)
	case GameSortReleaseDate:
		fallthrough
	default:
		// Unknown sort keys fall back to the release date ordering
		query = query.Order("games.release_date " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var games []model.Game
	if err := query.Find(&games).Error; err != nil {
		logger.Error("Failed to find games with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Game{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gameRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Game{}).
		Preload("Categories").
		Preload("Platforms").
		Preload("Developers").
		Preload("Publishers").
		Preload("Media")
}
