// File: handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Page endpoints
	GetPageHandler gin.HandlerFunc

	// Catalog endpoints
	GetCatalogHandler         gin.HandlerFunc
	UpdateServicePriceHandler gin.HandlerFunc
	AddServiceHandler         gin.HandlerFunc
	RemoveServiceHandler      gin.HandlerFunc

	HealthHandler gin.HandlerFunc

	// Guards for mutation routes
	MutationMiddleware []gin.HandlerFunc

	// Directory holding services.json and static assets.
	PublicDir   string
	CatalogPath string
}

// NewHandlerBundle assembles the bundle from a catalog handler.
func NewHandlerBundle(h *CatalogHandler, publicDir, catalogPath string, guards ...gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		GetPageHandler:            h.GetPage,
		GetCatalogHandler:         h.GetCatalog,
		UpdateServicePriceHandler: h.UpdateServicePrice,
		AddServiceHandler:         h.AddService,
		RemoveServiceHandler:      h.RemoveService,
		HealthHandler:             h.Health,
		MutationMiddleware:        guards,
		PublicDir:                 publicDir,
		CatalogPath:               catalogPath,
	}
}
