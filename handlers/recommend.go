package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carad/agents"
	"carad/models"
)

// PhotoRecommendations reviews the current photo set. Advisory only: the
// result never mutates form state, and an empty set is answered locally
// without an agent call.
func PhotoRecommendations(c *gin.Context) {
	var body models.PhotoRecommendationsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(body.ImagesBase64) == 0 {
		c.JSON(http.StatusOK, agents.ZeroPhotosRecommendation())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), AgentTimeout)
	defer cancel()

	c.JSON(http.StatusOK, agents.RunPhotoRecommendations(ctx, body.ImagesBase64, body.CarContext))
}
