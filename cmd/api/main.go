package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UrbanAidServices/household-marketplace/internal/audit"
	"github.com/UrbanAidServices/household-marketplace/internal/config"
	dbpkg "github.com/UrbanAidServices/household-marketplace/internal/db"
	"github.com/UrbanAidServices/household-marketplace/internal/routes"
	"github.com/UrbanAidServices/household-marketplace/internal/sessioncache"
	"github.com/UrbanAidServices/household-marketplace/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	sessions := sessioncache.New(cfg.RedisAddr, cfg.RedisPassword)
	uploader := storage.NewUploader(cfg)

	// Flush queued audit events before the process exits.
	dispatcher := audit.NewDispatcher(audit.New(db))
	defer dispatcher.Close()

	retention := audit.StartRetentionJob(db, cfg.AuditRetentionDays)
	defer retention.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, sessions, uploader, dispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
