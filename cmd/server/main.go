package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"comic-catalog/internal/cache"
	"comic-catalog/internal/config"
	apphttp "comic-catalog/internal/http"
	"comic-catalog/internal/repository/sqlite"
	"comic-catalog/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	comicRepo := sqlite.NewComicRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	wishListRepo := sqlite.NewWishListRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)

	if err := comicRepo.Init(ctx); err != nil {
		logger.Fatalf("init comic repository: %v", err)
	}
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := wishListRepo.Init(ctx); err != nil {
		logger.Fatalf("init wishlist repository: %v", err)
	}
	if err := tokenRepo.Init(ctx); err != nil {
		logger.Fatalf("init token repository: %v", err)
	}

	cacheClient, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("connect redis: %v", err)
	}
	defer cacheClient.Close()
	if cacheClient == nil {
		logger.Info("catalog cache disabled (no redis address configured)")
	}

	catalogService := service.NewCatalogService(comicRepo)
	userService := service.NewUserService(userRepo, tokenRepo)
	wishListService := service.NewWishListService(wishListRepo, userRepo, comicRepo)

	if cfg.Prod {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := apphttp.NewHandler(catalogService, userService, wishListService, cacheClient, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
