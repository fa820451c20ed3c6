package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkramos/gamestore-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPopulateService struct {
	result *service.PopulateResult
	err    error
	query  url.Values
}

func (s *stubPopulateService) Populate(ctx context.Context, query url.Values) (*service.PopulateResult, error) {
	s.query = query
	return s.result, s.err
}

func setupPopulateControllerTest(stub *stubPopulateService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewPopulateController(stub)
	router.POST("/games/populate", controller.Populate)
	return router
}

func TestPopulateController_ReturnsRunSummary(t *testing.T) {
	stub := &stubPopulateService{
		result: &service.PopulateResult{
			Created: []string{"Test Game"},
			Skipped: []string{"Old Game"},
			Failed: []service.ItemFailure{
				{Item: "Broken Game", Stage: "ENRICHMENT_UNAVAILABLE", Error: "status 500"},
			},
		},
	}
	router := setupPopulateControllerTest(stub)

	req := httptest.NewRequest(http.MethodPost, "/games/populate?limit=10&order=desc:trending", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Finished populating games", response["message"])
	assert.Equal(t, float64(1), response["created"])
	assert.Equal(t, float64(1), response["skipped"])
	assert.Equal(t, float64(1), response["failed"])

	// Query parameters are forwarded to the catalog fetch untouched
	assert.Equal(t, "10", stub.query.Get("limit"))
	assert.Equal(t, "desc:trending", stub.query.Get("order"))
}

func TestPopulateController_ConflictWhenRunInProgress(t *testing.T) {
	stub := &stubPopulateService{err: service.ErrSyncAlreadyRunning}
	router := setupPopulateControllerTest(stub)

	req := httptest.NewRequest(http.MethodPost, "/games/populate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SYNC_ALREADY_RUNNING", response["error"])
}

func TestPopulateController_BadGatewayWhenCatalogUnreachable(t *testing.T) {
	stub := &stubPopulateService{err: service.ErrCatalogUnavailable}
	router := setupPopulateControllerTest(stub)

	req := httptest.NewRequest(http.MethodPost, "/games/populate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CATALOG_FETCH_FAILED", response["error"])
}
