package handlers

import (
	"net/http"

	"cardquest/internal/catalog"
	"cardquest/internal/config"
	"cardquest/internal/ledger"
	"cardquest/internal/middleware"
	"cardquest/internal/progression"
	"cardquest/internal/settings"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, l *ledger.Ledger,
	tracker *progression.Tracker, sm *settings.Manager, cat *catalog.Catalog) {

	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(addContext(l, tracker, sm, cat))

	r.GET("/healthz", handleHealth)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg))
	{
		api.POST("/reviews", handleReview)
		api.GET("/progression", handleProgression)
		api.PUT("/theme", handleSetTheme)
		api.POST("/session/reset", handleResetSession)

		api.GET("/powerups", handleInventory)
		api.POST("/powerups", handleGrant)
		api.POST("/powerups/:id/activate", handleActivate)
		api.GET("/powerups/count", handleCount)
		api.GET("/powerups/active", handleActiveEffects)
		api.DELETE("/powerups/active", handleClearActive)

		api.GET("/catalog/:theme", handleCatalog)

		api.GET("/settings", handleGetSettings)
		api.PUT("/settings", handleUpdateSettings)
		api.POST("/settings/reset", handleResetSettings)
	}
}

func addContext(l *ledger.Ledger, tracker *progression.Tracker,
	sm *settings.Manager, cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ledger", l)
		c.Set("tracker", tracker)
		c.Set("settings", sm)
		c.Set("catalog", cat)
		c.Next()
	}
}

func getLedger(c *gin.Context) *ledger.Ledger {
	return c.MustGet("ledger").(*ledger.Ledger)
}

func getTracker(c *gin.Context) *progression.Tracker {
	return c.MustGet("tracker").(*progression.Tracker)
}

func getSettings(c *gin.Context) *settings.Manager {
	return c.MustGet("settings").(*settings.Manager)
}

func getCatalog(c *gin.Context) *catalog.Catalog {
	return c.MustGet("catalog").(*catalog.Catalog)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
