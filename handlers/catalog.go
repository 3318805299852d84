package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCatalog backs the cascading brand → model selectors. Without a brand it
// lists brands; with one it lists that brand's models. An empty catalog (no
// reference file on disk) just yields empty lists — the form degrades to
// free-text entry.
func GetCatalog(c *gin.Context) {
	brand := c.Query("brand")
	if brand == "" {
		c.JSON(http.StatusOK, gin.H{"brands": Catalog.Brands()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": Catalog.Models(brand)})
}
