package handlers

import (
	"net/http"

	"cardquest/internal/logger"
	"cardquest/internal/models"

	"github.com/gin-gonic/gin"
)

type grantRequest struct {
	Type  models.PowerUpType `json:"type" binding:"required"`
	Theme *models.Theme      `json:"theme"`
}

func handleGrant(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Theme != nil && !req.Theme.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown theme"})
		return
	}

	p, err := getLedger(c).Grant(req.Type, req.Theme)
	if err != nil {
		logger.Error("Failed to grant powerup", "type", req.Type, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant powerup"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func handleActivate(c *gin.Context) {
	id := c.Param("id")

	ok, err := getLedger(c).Activate(id)
	if err != nil {
		logger.Error("Failed to activate powerup", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate powerup"})
		return
	}
	if !ok {
		// Unknown id or exhausted stack, usually stale UI state.
		c.JSON(http.StatusNotFound, gin.H{"error": "Powerup not available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activated": true})
}

func handleInventory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"powerups": getLedger(c).Inventory()})
}

func handleActiveEffects(c *gin.Context) {
	l := getLedger(c)

	if t := c.Query("type"); t != "" {
		c.JSON(http.StatusOK, gin.H{
			"active": l.HasActiveEffectOfType(models.PowerUpType(t)),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_powerups": l.ActiveEffects()})
}

func handleCount(c *gin.Context) {
	t := c.Query("type")
	if t == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type parameter"})
		return
	}

	var theme *models.Theme
	if raw := c.Query("theme"); raw != "" {
		th := models.Theme(raw)
		if !th.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown theme"})
			return
		}
		theme = &th
	}

	count := getLedger(c).Count(models.PowerUpType(t), theme)
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func handleClearActive(c *gin.Context) {
	if err := getLedger(c).ClearAllActive(); err != nil {
		logger.Error("Failed to clear active powerups", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear active powerups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func handleCatalog(c *gin.Context) {
	theme := models.Theme(c.Param("theme"))
	if !theme.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown theme"})
		return
	}

	cat := getCatalog(c)

	type entry struct {
		Type models.PowerUpType `json:"type"`
		models.PowerUpMetadata
	}

	types := cat.EligibleTypes(theme)
	entries := make([]entry, 0, len(types))
	for _, t := range types {
		entries = append(entries, entry{Type: t, PowerUpMetadata: cat.MetadataFor(t)})
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme, "powerups": entries})
}
