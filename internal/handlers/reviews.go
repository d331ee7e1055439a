package handlers

import (
	"net/http"

	"cardquest/internal/logger"
	"cardquest/internal/models"

	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	// Ease button pressed in the host app: 1=Again, 2=Hard, 3=Good, 4=Easy.
	Ease int `json:"ease" binding:"required"`
}

func handleReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Ease < 1 || req.Ease > 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ease must be between 1 and 4"})
		return
	}

	// Good and Easy count as correct.
	correct := req.Ease >= 3

	outcome, err := getTracker(c).ProcessReview(correct)
	if err != nil {
		logger.Error("Failed to process review", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process review"})
		return
	}

	// A crossed milestone grants a theme-appropriate power-up.
	var granted *models.PowerUp
	if outcome.GrantType != nil {
		granted, err = getLedger(c).Grant(*outcome.GrantType, outcome.GrantTheme)
		if err != nil {
			logger.Error("Failed to grant milestone powerup", "type", *outcome.GrantType, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant powerup"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"correct":         outcome.Correct,
		"points_earned":   outcome.PointsEarned,
		"current_streak":  outcome.CurrentStreak,
		"session_health":  outcome.SessionHealth,
		"granted_powerup": granted,
	})
}

func handleProgression(c *gin.Context) {
	c.JSON(http.StatusOK, getTracker(c).Snapshot())
}

type themeRequest struct {
	Theme models.Theme `json:"theme" binding:"required"`
}

func handleSetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := getTracker(c).SetTheme(req.Theme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

func handleResetSession(c *gin.Context) {
	if err := getTracker(c).ResetSession(); err != nil {
		logger.Error("Failed to reset session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset session"})
		return
	}

	c.JSON(http.StatusOK, getTracker(c).Snapshot())
}
