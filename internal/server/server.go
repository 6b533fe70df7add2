package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"mobiwise/internal/config"
	"mobiwise/internal/db"
	"mobiwise/internal/handlers"
	"mobiwise/internal/repositories"
	"mobiwise/internal/routes"
	"mobiwise/internal/services"
)

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer assembles the HTTP server from process configuration.
func NewServer(cfg *config.Config) *http.Server {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	provider := initializeProvider(cfg, logger)
	usageRepo := initializeUsageRepository(cfg, logger)

	chatHandler := handlers.NewChatHandler(provider, usageRepo, cfg.GeminiAPIKey, logger)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, chatHandler)

	// Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+cfg.Port+"/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	return &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsMiddleware(router),
	}
}

// initializeProvider creates the Gemini-backed chat provider. With no API key
// the provider stays nil and the handler reports the configuration error on
// every chat request instead of crashing at startup.
func initializeProvider(cfg *config.Config, logger *log.Logger) services.ChatProvider {
	if cfg.GeminiAPIKey == "" {
		logger.Println("⚠️  GEMINI_API_KEY is not set - chat requests will fail with a config error")
		return nil
	}

	provider, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Printf("Failed to initialize Gemini client: %v", err)
		return nil
	}

	logger.Printf("✅ Gemini provider initialized (default model: %s)", cfg.GeminiModel)
	return provider
}

// initializeUsageRepository connects to Redis for usage counters. Stats are
// optional: when Redis is unreachable the proxy runs without them.
func initializeUsageRepository(cfg *config.Config, logger *log.Logger) repositories.UsageRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Printf("Connecting to Redis: %s:%d (DB: %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)

	redisClient := db.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(ctx); err != nil {
		logger.Printf("❌ Redis connection failed: %v", err)
		logger.Println("   Usage stats will be disabled")
		logger.Println("   Hint: Ensure Redis is running (docker run -d -p 6379:6379 redis:7-alpine)")
		return nil
	}

	logger.Println("✅ Redis connected, usage stats enabled")
	return repositories.NewRedisUsageRepository(redisClient.GetClient())
}
