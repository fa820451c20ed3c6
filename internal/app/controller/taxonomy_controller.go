package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkramos/gamestore-backend/internal/app/service"
	apperrors "github.com/mkramos/gamestore-backend/internal/errors"
	"github.com/mkramos/gamestore-backend/internal/middleware"
)

// TaxonomyController exposes the four taxonomy listings
type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{
		taxonomyService: taxonomyService,
	}
}

// GET /api/v1/categories
func (ctrl *TaxonomyController) ListCategories(c *gin.Context) {
	entities, err := ctrl.taxonomyService.ListCategories()
	if err != nil {
		ctrl.fail(c, "categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": entities, "count": len(entities)})
}

// GET /api/v1/platforms
func (ctrl *TaxonomyController) ListPlatforms(c *gin.Context) {
	entities, err := ctrl.taxonomyService.ListPlatforms()
	if err != nil {
		ctrl.fail(c, "platforms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"platforms": entities, "count": len(entities)})
}

// GET /api/v1/developers
func (ctrl *TaxonomyController) ListDevelopers(c *gin.Context) {
	entities, err := ctrl.taxonomyService.ListDevelopers()
	if err != nil {
		ctrl.fail(c, "developers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"developers": entities, "count": len(entities)})
}

// GET /api/v1/publishers
func (ctrl *TaxonomyController) ListPublishers(c *gin.Context) {
	entities, err := ctrl.taxonomyService.ListPublishers()
	if err != nil {
		ctrl.fail(c, "publishers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"publishers": entities, "count": len(entities)})
}

func (ctrl *TaxonomyController) fail(c *gin.Context, kind string, err error) {
	log := middleware.GetLoggerFromContext(c)
	log.Error("Failed to list taxonomy entities", err, map[string]interface{}{
		"kind": kind,
	})
	info := apperrors.ParseError(err, kind)
	apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
}
