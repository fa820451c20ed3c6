package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkramos/gamestore-backend/internal/app/service"
	apperrors "github.com/mkramos/gamestore-backend/internal/errors"
	"github.com/mkramos/gamestore-backend/internal/middleware"
)

type PopulateController struct {
	populateService service.PopulateService
}

func NewPopulateController(populateService service.PopulateService) *PopulateController {
	return &PopulateController{
		populateService: populateService,
	}
}

// Populate triggers a catalog sync run. Query parameters are forwarded
// verbatim to the catalog endpoint. The response is 200 whenever the run
// settled, even with per-item failures; only a failed catalog fetch or a
// concurrent run aborts.
// POST /api/v1/games/populate
func (ctrl *PopulateController) Populate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	log.Info("Catalog populate triggered", map[string]interface{}{
		"query": c.Request.URL.RawQuery,
	})

	result, err := ctrl.populateService.Populate(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSyncAlreadyRunning):
			apperrors.Conflict(c, apperrors.SyncAlreadyRunning, "A catalog sync is already running")
		case errors.Is(err, service.ErrCatalogUnavailable):
			log.Error("Catalog fetch failed", err, nil)
			apperrors.BadGateway(c, apperrors.CatalogFetchFailed, "The remote catalog could not be fetched")
		default:
			log.Error("Populate run failed", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Finished populating games",
		"created": len(result.Created),
		"skipped": len(result.Skipped),
		"failed":  len(result.Failed),
		"result":  result,
	})
}
