package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkramos/gamestore-backend/config"
	"github.com/mkramos/gamestore-backend/internal/app/controller"
	"github.com/mkramos/gamestore-backend/internal/app/repository"
	"github.com/mkramos/gamestore-backend/internal/app/service"
	"github.com/mkramos/gamestore-backend/internal/db"
	"github.com/mkramos/gamestore-backend/internal/router"
	"github.com/mkramos/gamestore-backend/pkg/gog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return "https://cdn.test/" + key, nil
}

// gogServer plays the catalog endpoint, the game pages and the image host
func newGogServer(t *testing.T, products []gog.Product) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/catalog":
			json.NewEncoder(w).Encode(map[string]interface{}{"products": products})
		case len(r.URL.Path) > 6 && r.URL.Path[:6] == "/game/":
			fmt.Fprint(w, `<html><body><div class="description"><p>A mirrored game.</p></div><div class="age-restrictions__icon"><svg><use xlink:href="#age_16"></use></svg></div></body></html>`)
		default:
			w.Write([]byte("jpeg-bytes"))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setupIntegrationTest(t *testing.T, products []gog.Product) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	gogServer := newGogServer(t, products)
	client, err := gog.NewClient(gog.Config{
		CatalogURL:  gogServer.URL + "/catalog",
		GamePageURL: gogServer.URL + "/game",
	})
	require.NoError(t, err)

	gameRepo := repository.NewGameRepository(testDB)
	taxonomyRepo := repository.NewTaxonomyRepository(testDB)
	mediaRepo := repository.NewMediaRepository(testDB)

	gameService := service.NewGameService(gameRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo)
	mediaService := service.NewMediaService(client, &memoryStorage{}, mediaRepo)
	populateService := service.NewPopulateService(client, taxonomyService, mediaService, gameRepo, nil, 4, 5)

	cfg := &config.Config{}
	cfg.Server.GinMode = gin.TestMode
	cfg.CORS.AllowedOrigins = []string{"*"}

	appRouter := router.NewRouter(
		controller.NewGameController(gameService),
		controller.NewTaxonomyController(taxonomyService),
		controller.NewPopulateController(populateService),
		cfg,
	)

	return &TestServer{Router: appRouter.Setup(), DB: testDB}
}

func catalogProduct(title, slug string) gog.Product {
	return gog.Product{
		Title:            title,
		Slug:             slug,
		Price:            gog.Price{FinalMoney: gog.Money{Amount: 2999}},
		ReleaseDate:      "2022-02-22",
		Genres:           []gog.Genre{{Name: "Role-playing"}},
		OperatingSystems: []string{"Windows", "Linux"},
		Developers:       []string{"Indie Studio"},
		Publishers:       []string{"Big Publisher"},
	}
}

func TestPopulateThenRead(t *testing.T) {
	products := []gog.Product{
		catalogProduct("Mirrored Game", "mirrored-game"),
	}
	ts := setupIntegrationTest(t, products)

	// Trigger a sync run through the API
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games/populate", nil)
	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var populateResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &populateResponse))
	assert.Equal(t, float64(1), populateResponse["created"])
	assert.Equal(t, float64(0), populateResponse["failed"])

	// The mirrored game is readable with its taxonomy references
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/games/mirrored-game", nil)
	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var gameResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gameResponse))
	game := gameResponse["game"].(map[string]interface{})
	assert.Equal(t, "Mirrored Game", game["name"])
	assert.Equal(t, float64(2999), game["price"])
	assert.Equal(t, "age16", game["rating"])
	assert.Contains(t, game["description"], "A mirrored game.")
	assert.Len(t, game["platforms"], 2)

	// The taxonomies created during the run are listable
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var categoryResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categoryResponse))
	categories := categoryResponse["categories"].([]interface{})
	require.Len(t, categories, 1)
	category := categories[0].(map[string]interface{})
	assert.Equal(t, "Role-playing", category["name"])
	assert.Equal(t, "role-playing", category["slug"])
}

func TestPopulateIsIdempotentThroughTheAPI(t *testing.T) {
	products := []gog.Product{
		catalogProduct("Mirrored Game", "mirrored-game"),
	}
	ts := setupIntegrationTest(t, products)

	for run := 0; run < 2; run++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/games/populate", nil)
		ts.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var listResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResponse))
	assert.Equal(t, float64(1), listResponse["total"])
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupIntegrationTest(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
