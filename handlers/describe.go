package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"carad/agents"
	"carad/models"
)

// RegenerateDescription rewrites the listing text from the current field
// values plus the vision payload saved at analysis time. It replaces the text
// wholesale and touches nothing else.
func RegenerateDescription(c *gin.Context) {
	var body models.RegenerateDescriptionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), AgentTimeout)
	defer cancel()

	id := body.CarIdentity
	fields := map[string]any{
		"brand":     id.Brand,
		"model":     id.Model,
		"body_type": id.BodyType,
		"color":     id.Color,
	}
	if id.Year != nil {
		fields["year"] = *id.Year
	} else if y, ok := body.ExtraParams["year"]; ok {
		fields["year"] = y
	}
	if m, ok := body.ExtraParams["mileage"]; ok {
		fields["mileage"] = m
	}
	for k, v := range body.ExtraParams {
		if _, taken := fields[k]; !taken {
			fields[k] = v
		}
	}

	text, err := agents.RunDescription(ctx, body.ImagesBase64,
		map[string]any{"brand": id.Brand, "model": id.Model, "body_type": id.BodyType, "color": id.Color},
		body.VisionResult, fields)
	if err != nil {
		log.Printf("regenerate-description: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate description"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated_description": text})
}
