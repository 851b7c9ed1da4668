package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ev-g-hash/polyvideos/internal/config"
	"github.com/ev-g-hash/polyvideos/internal/database"
	"github.com/ev-g-hash/polyvideos/internal/domain/auth"
	"github.com/ev-g-hash/polyvideos/internal/domain/video"
	"github.com/ev-g-hash/polyvideos/internal/middleware"
	jwtsvc "github.com/ev-g-hash/polyvideos/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&auth.User{}, &video.Video{}); err != nil {
		log.Fatal(err)
	}

	store, err := video.NewDiskStore(cfg.MediaRoot)
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	ffmpeg := video.NewRunner(cfg.FFmpegBin)

	authService := auth.NewService(auth.NewRepository(db), j)
	authHandler := auth.NewHandler(authService)

	videoService := video.NewService(
		video.NewRepository(db),
		store,
		video.NewNormalizer(ffmpeg, store),
		video.NewFrameExtractor(ffmpeg, store),
		logger,
	)
	videoHandler := video.NewHandler(videoService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(logger))

	// Stored videos and thumbnails are served straight off the media dir.
	r.Static("/media", cfg.MediaRoot)

	v1 := r.Group("/api/v1")
	{
		// public
		auth.RegisterPublicRoutes(v1, authHandler)
		video.RegisterPublicRoutes(v1, videoHandler)

		// protected (all mutations are admin-only)
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			auth.RegisterProtectedRoutes(protected, authHandler)
			video.RegisterAdminRoutes(protected, videoHandler)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
