package main

import (
	"log"
	"time"

	"cardquest/internal/catalog"
	"cardquest/internal/config"
	"cardquest/internal/database"
	"cardquest/internal/handlers"
	"cardquest/internal/ledger"
	"cardquest/internal/logger"
	"cardquest/internal/progression"
	"cardquest/internal/scheduler"
	"cardquest/internal/settings"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel))

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	sm, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	led, err := ledger.New(database.NewStore(db), cat)
	if err != nil {
		log.Fatal("Failed to build powerup ledger:", err)
	}

	tracker, err := progression.NewTracker(db, sm, cat)
	if err != nil {
		log.Fatal("Failed to load progression:", err)
	}

	sched := scheduler.New(db)
	sched.Start(cfg.SweepInterval)
	defer sched.Stop()

	// The ledger never schedules its own timers; this loop owns them.
	go runTicker(led, cfg.TickInterval)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.SetupRoutes(r, cfg, led, tracker, sm, cat)

	logger.Info("Server starting", "port", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}

func runTicker(led *ledger.Ledger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		delta := now.Sub(last).Seconds()
		last = now

		expired, err := led.Tick(delta)
		if err != nil {
			logger.Error("Tick failed", "error", err)
			continue
		}
		for _, p := range expired {
			logger.Info("Powerup effect expired", "type", p.Type, "name", p.Name)
		}
	}
}
