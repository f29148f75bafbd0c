// File: almadina/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"almadina/config"
	"almadina/handlers"
	"almadina/middleware"
	"almadina/routes"
	"almadina/services/catalog"
	"almadina/services/render"
	"almadina/services/surface"
	"almadina/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Page surface the catalog renders into.
	page, err := surface.Load(filepath.Join(cfg.PublicDir, cfg.PageTemplate))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load page template: %v", err)
	}
	cards, err := render.NewCardRenderer(cfg.CardCacheSize)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to create card renderer: %v", err)
	}

	var source catalog.CatalogSource
	if cfg.CatalogBaseURL != "" {
		source = catalog.NewHTTPSource(cfg.CatalogBaseURL, cfg.CatalogPath, nil)
	} else {
		source = &catalog.FileSource{Path: filepath.Join(cfg.PublicDir, cfg.CatalogPath)}
	}

	store := catalog.NewCatalogStore(source, page, cards, logger.Named("catalog"))
	store.ContainerID = cfg.ServicesContainerID
	store.Contact = catalog.NewContactBinder(cfg.WhatsAppBaseURL)

	redisClient, err := utils.InitRedis()
	if err != nil {
		logger.Warn("main: render events disabled", zap.Error(err))
	}
	if redisClient != nil {
		store.Publisher = catalog.NewRedisRenderPublisher(redisClient, cfg.RenderChannel)
	}

	// Load once; a failed load leaves the page on its empty state.
	loadCtx := context.Background()
	if cfg.CatalogFetchTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(loadCtx, time.Duration(cfg.CatalogFetchTimeoutSeconds)*time.Second)
		defer cancel()
	}
	if err := store.Load(loadCtx); err != nil {
		logger.Warn("main: serving without catalog", zap.Error(err))
	}

	if cfg.AdminTokenHash == "" {
		logger.Warn("main: ADMIN_TOKEN_HASH not set, catalog mutations are unauthenticated")
	}

	// Create the Gin router.
	router := gin.New()
	// Rate limits key on ClientIP, which only reads X-Forwarded-For from these.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLoggerMiddleware(logger))
	router.Use(utils.ErrorHandler())

	catalogHandler := handlers.NewCatalogHandler(store, redisClient)
	handlerBundle := handlers.NewHandlerBundle(catalogHandler, cfg.PublicDir, cfg.CatalogPath,
		middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin),
		middleware.AdminTokenMiddleware(cfg.AdminTokenHash),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
