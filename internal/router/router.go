package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mkramos/gamestore-backend/config"
	"github.com/mkramos/gamestore-backend/internal/app/controller"
	"github.com/mkramos/gamestore-backend/internal/middleware"
)

type Router struct {
	gameController     *controller.GameController
	taxonomyController *controller.TaxonomyController
	populateController *controller.PopulateController
	config             *config.Config
}

func NewRouter(
	gameController *controller.GameController,
	taxonomyController *controller.TaxonomyController,
	populateController *controller.PopulateController,
	cfg *config.Config,
) *Router {
	return &Router{
		gameController:     gameController,
		taxonomyController: taxonomyController,
		populateController: populateController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GAMESTORE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		games := v1.Group("/games")
		{
			games.GET("", r.gameController.ListGames)
			games.POST("/populate", r.populateController.Populate)
			games.GET("/:slug", r.gameController.GetGameBySlug)
		}

		v1.GET("/categories", r.taxonomyController.ListCategories)
		v1.GET("/platforms", r.taxonomyController.ListPlatforms)
		v1.GET("/developers", r.taxonomyController.ListDevelopers)
		v1.GET("/publishers", r.taxonomyController.ListPublishers)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
