package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/glencullen/golfpoi/internal/config"
	dbpkg "github.com/glencullen/golfpoi/internal/db"
	"github.com/glencullen/golfpoi/internal/imagestore"
	"github.com/glencullen/golfpoi/internal/middleware"
	"github.com/glencullen/golfpoi/internal/routes"
	"github.com/glencullen/golfpoi/internal/weather"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	images := imagestore.NewS3Store(cfg)
	weatherSvc := weather.New(cfg.WeatherAPIKey, cache)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.LoadHTMLGlob("web/templates/*.tmpl")
	r.Static("/public", "./web/static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, images, weatherSvc)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
