package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carad/agents"
	"carad/catalog"
	"carad/config"
	"carad/handlers"
	"carad/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	agents.Init(llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIImageModel, cfg.OpenAIBaseURL))
	handlers.Catalog = catalog.Load(cfg.CatalogPath)
	handlers.PriceTimeout = cfg.PriceTimeout
	handlers.AgentTimeout = cfg.AgentTimeout

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// every response carries a request id for log correlation
	router.Use(func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	})

	router.MaxMultipartMemory = 32 << 20

	api := router.Group("/api")
	{
		api.POST("/analyze", handlers.Analyze)
		api.POST("/recalculate-price", handlers.RecalculatePrice)
		api.POST("/regenerate-description", handlers.RegenerateDescription)
		api.POST("/augment-image", handlers.AugmentImage)
		api.POST("/photo-recommendations", handlers.PhotoRecommendations)
		api.POST("/listing/readiness", handlers.ListingReadiness)

		api.GET("/generations", handlers.GetGenerations)
		api.GET("/catalog", handlers.GetCatalog)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	addr := ":" + cfg.Port
	log.Printf("Server starting on %s (model %s)", addr, cfg.OpenAIModel)
	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
