package routes

import (
	"net/http"
	"path/filepath"
	"time"

	"almadina/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPageRoutes serves the rendered page and the raw catalog file.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.GetPageHandler)
	if hb.PublicDir != "" && hb.CatalogPath != "" {
		r.StaticFile("/"+hb.CatalogPath, filepath.Join(hb.PublicDir, hb.CatalogPath))
	}
}

// RegisterCatalogRoutes registers the catalog API.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("", hb.GetCatalogHandler)

		// Mutations (rate limited, optionally token protected)
		services := api.Group("/services")
		services.Use(hb.MutationMiddleware...)
		services.POST("", hb.AddServiceHandler)
		services.PATCH("/price", hb.UpdateServicePriceHandler)
		services.POST("/remove", hb.RemoveServiceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
		return
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPageRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
