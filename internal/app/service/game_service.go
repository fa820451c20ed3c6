package service

import (
	"errors"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrGameNotFound = errors.New("game not found")

// GameService is the read side of the mirror
type GameService interface {
	ListGames(filter repository.GameFilter) ([]model.Game, error)
	GetGameBySlug(slug string) (*model.Game, error)
	CountGames() (int64, error)
}

type gameService struct {
	repo repository.GameRepository
}

func NewGameService(repo repository.GameRepository) GameService {
	return &gameService{repo: repo}
}

func (s *gameService) ListGames(filter repository.GameFilter) ([]model.Game, error) {
	games, err := s.repo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list games", err)
		return nil, err
	}
	return games, nil
}

func (s *gameService) GetGameBySlug(slug string) (*model.Game, error) {
	game, err := s.repo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		logger.Error("Failed to get game by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return game, nil
}

func (s *gameService) CountGames() (int64, error) {
	return s.repo.Count()
}
