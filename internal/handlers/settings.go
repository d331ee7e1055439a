package handlers

import (
	"net/http"

	"cardquest/internal/logger"
	"cardquest/internal/settings"

	"github.com/gin-gonic/gin"
)

func handleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, getSettings(c).Get())
}

func handleUpdateSettings(c *gin.Context) {
	var s settings.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stored, err := getSettings(c).Update(s)
	if err != nil {
		logger.Error("Failed to save settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, stored)
}

func handleResetSettings(c *gin.Context) {
	stored, err := getSettings(c).Reset()
	if err != nil {
		logger.Error("Failed to reset settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset settings"})
		return
	}

	c.JSON(http.StatusOK, stored)
}
