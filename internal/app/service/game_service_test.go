package service

import (
	"testing"
	"time"

	"github.com/mkramos/gamestore-backend/internal/app/model"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGameServiceTest(t *testing.T) (GameService, repository.GameRepository) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := repository.NewGameRepository(testDB)
	return NewGameService(repo), repo
}

func TestGameService_GetGameBySlug(t *testing.T) {
	svc, repo := setupGameServiceTest(t)

	require.NoError(t, repo.Create(&model.Game{
		Name:        "Test Game",
		Slug:        "test-game",
		Price:       1999,
		ReleaseDate: time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC),
	}))

	game, err := svc.GetGameBySlug("test-game")
	require.NoError(t, err)
	assert.Equal(t, "Test Game", game.Name)
	assert.Equal(t, 1999.0, game.Price)
}

func TestGameService_GetGameBySlugNotFound(t *testing.T) {
	svc, _ := setupGameServiceTest(t)

	game, err := svc.GetGameBySlug("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.Nil(t, game)
}

func TestGameService_ListGames(t *testing.T) {
	svc, repo := setupGameServiceTest(t)

	require.NoError(t, repo.Create(&model.Game{Name: "Alpha", Slug: "alpha"}))
	require.NoError(t, repo.Create(&model.Game{Name: "Beta", Slug: "beta"}))

	games, err := svc.ListGames(repository.GameFilter{SortBy: repository.GameSortName, SortAscending: true})
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Alpha", games[0].Name)
	assert.Equal(t, "Beta", games[1].Name)

	count, err := svc.CountGames()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
