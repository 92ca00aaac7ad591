package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"aidetect-backend/internal/detection"
	"aidetect-backend/internal/llm"
	"aidetect-backend/internal/llm/gemini"
	"aidetect-backend/internal/llm/openai"
	"aidetect-backend/internal/shared/config"
	"aidetect-backend/internal/shared/metrics"
	"aidetect-backend/internal/shared/server/middleware"
	"aidetect-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		corsMiddleware(cfg.CORSAllowOrigins),
	)

	svc := detection.NewService(
		newModelClient(cfg),
		cfg.LLMProvider,
		cfg.LLMModel,
		cfg.APIKey() != "",
		cfg.ModelTimeout,
	)
	handler := detection.NewHandler(svc)

	api := r.Group("/api/v1")
	api.GET("/ping", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	handler.RegisterRoutes(api)

	if cfg.Env == "dev" {
		r.GET("/metrics", metrics.Handler())
	}

	return r
}

// newModelClient picks the vision model provider from configuration.
func newModelClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel, cfg.Temperature)
	default:
		return gemini.New(cfg.GeminiAPIKey, cfg.LLMModel, cfg.Temperature)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
