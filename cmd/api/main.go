package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/config"
	dbpkg "github.com/EspacoMenteLeve/psy-scheduler/internal/db"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/logger"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/middleware"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Environment)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
