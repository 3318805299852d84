package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carad/agents"
)

// GetGenerations populates the dependent generation dropdown for a
// brand+model. Always 200 with a (possibly empty) list — a failed lookup
// must never surface as an error to the form.
func GetGenerations(c *gin.Context) {
	brand := c.Query("brand")
	model := c.Query("model")

	ctx, cancel := context.WithTimeout(c.Request.Context(), AgentTimeout)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"generations": agents.Generations(ctx, brand, model)})
}
