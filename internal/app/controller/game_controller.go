package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/internal/app/service"
	apperrors "github.com/mkramos/gamestore-backend/internal/errors"
	"github.com/mkramos/gamestore-backend/internal/middleware"
)

type GameController struct {
	gameService service.GameService
}

func NewGameController(gameService service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// ListGames returns mirrored games, filterable by taxonomy slug
// GET /api/v1/games
func (ctrl *GameController) ListGames(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.GameFilter{
		Category:      c.Query("category"),
		Platform:      c.Query("platform"),
		Developer:     c.Query("developer"),
		Publisher:     c.Query("publisher"),
		Search:        c.Query("search"),
		SortBy:        repository.GameSort(c.DefaultQuery("sort", string(repository.GameSortReleaseDate))),
		SortAscending: c.Query("order") == "asc",
	}

	filter.Limit = parsePositiveInt(c.Query("limit"), 20)
	page := parsePositiveInt(c.Query("page"), 1)
	filter.Offset = (page - 1) * filter.Limit

	games, err := ctrl.gameService.ListGames(filter)
	if err != nil {
		log.Error("Failed to fetch games", err, nil)
		info := apperrors.ParseError(err, "games")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	total, err := ctrl.gameService.CountGames()
	if err != nil {
		log.Error("Failed to count games", err, nil)
		apperrors.InternalError(c, "Failed to fetch games")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games": games,
		"count": len(games),
		"total": total,
		"page":  page,
	})
}

// GetGameBySlug returns one game with its taxonomy references and media
// GET /api/v1/games/:slug
func (ctrl *GameController) GetGameBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	game, err := ctrl.gameService.GetGameBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			apperrors.NotFound(c, apperrors.GameNotFound, "Game not found")
			return
		}
		log.Error("Failed to fetch game", err, map[string]interface{}{
			"slug": slug,
		})
		info := apperrors.ParseError(err, "game")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game": game,
	})
}

func parsePositiveInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
