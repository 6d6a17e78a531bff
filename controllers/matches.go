package controllers

import (
	"net/http"

	"lightcycle/config"
	"lightcycle/models"

	"github.com/gin-gonic/gin"
)

// ListMatches returns every match recorded since the process started.
func ListMatches(c *gin.Context) {
	var matches []models.MatchRecord
	config.DB.Order("id DESC").Find(&matches)
	c.JSON(http.StatusOK, matches)
}

// LatestStandings returns the most recently finished match with its
// standings snapshot and elimination log.
func LatestStandings(c *gin.Context) {
	var match models.MatchRecord
	if err := config.DB.Where("status = ?", "finished").Order("id DESC").First(&match).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no finished match yet"})
		return
	}

	var eliminations []models.Elimination
	config.DB.Where("match_id = ?", match.ID).Order("loss_order ASC").Find(&eliminations)

	c.JSON(http.StatusOK, gin.H{
		"match":        match,
		"eliminations": eliminations,
	})
}
