package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"almadina/models"
	"almadina/services/catalog"
	"almadina/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogHandler exposes the catalog store over HTTP.
type CatalogHandler struct {
	Catalog catalog.CatalogService
	Redis   *redis.Client
}

func NewCatalogHandler(store catalog.CatalogService, redisClient *redis.Client) *CatalogHandler {
	return &CatalogHandler{Catalog: store, Redis: redisClient}
}

type updatePriceRequest struct {
	ID    models.ServiceID `json:"id"`
	Price *float64         `json:"price" binding:"required"`
}

type removeServiceRequest struct {
	ID models.ServiceID `json:"id"`
}

// GetPage handles GET /.
func (h *CatalogHandler) GetPage(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Catalog.WritePage(&buf); err != nil {
		utils.RequestLogger(c).Error("GetPage: failed to render page", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to render page", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetCatalog handles GET /api/catalog.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	doc, ok := h.Catalog.Document()
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "catalog not loaded", "the catalog document could not be loaded at startup")
		return
	}
	// Prices are not range-checked, and NaN or ±Inf have no JSON form.
	body, err := json.Marshal(doc)
	if err != nil {
		utils.RequestLogger(c).Error("GetCatalog: failed to encode catalog", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to encode catalog", err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// UpdateServicePrice handles PATCH /api/catalog/services/price.
func (h *CatalogHandler) UpdateServicePrice(c *gin.Context) {
	var body updatePriceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.ID.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "missing service ID", "you must provide a service ID in the body")
		return
	}

	updated := h.Catalog.UpdateServicePrice(body.ID, *body.Price)
	c.JSON(http.StatusOK, gin.H{"id": body.ID, "updated": updated})
}

// AddService handles POST /api/catalog/services.
func (h *CatalogHandler) AddService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.Catalog.AddService(svc); err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			utils.JSONError(c, http.StatusBadRequest, "invalid service", err.Error())
			return
		}
		utils.RequestLogger(c).Error("AddService: failed to add service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to add service", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": svc.ID, "added": h.Catalog.Loaded()})
}

// RemoveService handles POST /api/catalog/services/remove.
func (h *CatalogHandler) RemoveService(c *gin.Context) {
	var body removeServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.ID.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "missing service ID", "you must provide a service ID in the body")
		return
	}

	removed := h.Catalog.RemoveService(body.ID)
	c.JSON(http.StatusOK, gin.H{"id": body.ID, "removed": removed})
}

// Health handles GET /health.
func (h *CatalogHandler) Health(c *gin.Context) {
	status := utils.CheckHealth(c.Request.Context(), h.Catalog, h.Redis)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "health": status})
}
