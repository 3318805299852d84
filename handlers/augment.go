package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carad/agents"
)

// AugmentImage runs the image transformation agent on one uploaded photo:
// either a quality improvement or adding a single object, chosen and
// validated by the agent itself. Rejection reasons are returned structured,
// for the UI to render verbatim.
func AugmentImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected an image file"})
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected an image file"})
		return
	}
	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}
	prompt := c.PostForm("prompt")
	if strings.TrimSpace(prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), AgentTimeout)
	defer cancel()

	c.JSON(http.StatusOK, agents.RunAugmentation(ctx, raw, prompt))
}
