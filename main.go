package main

import (
	"os"
	"time"

	"github.com/darkempire/vid/config"
	"github.com/darkempire/vid/downloader"
	"github.com/darkempire/vid/models"
	"github.com/darkempire/vid/routes"
	"github.com/darkempire/vid/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Redis is optional; cache lookups degrade to misses without it.
	utils.InitRedis(cfg)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Sugar.Fatalf("create upload dir %s: %v", cfg.UploadDir, err)
	}

	db, err := config.InitDatabase(cfg, &models.User{}, &models.Video{})
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}

	sessions := utils.NewSessionStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	fetcher := downloader.New(db, cfg.UploadDir)

	r := routes.SetupRouter(cfg, db, sessions, fetcher)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	// Write timeout is disabled: a download runs inside the request and may
	// legitimately take longer than any fixed response deadline.
	srv := utils.NewServer(":"+cfg.AppPort, r, utils.DEFAULT_READ_TIMEOUT, 0)
	if err := srv.ListenAndServe(); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
