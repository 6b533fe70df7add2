package routes

import (
	"github.com/gorilla/mux"

	"mobiwise/internal/handlers"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, chat *handlers.ChatHandler) {
	// Health endpoints
	router.HandleFunc("/health", handlers.HealthCheckHandler).Methods("GET")

	// Chat proxy. Method filtering happens inside the handler so the 405
	// body stays under our control (mux would send plain text).
	router.HandleFunc("/api/chat", chat.Chat)

	// Usage stats (aggregate counters only)
	router.HandleFunc("/api/stats", chat.Stats).Methods("GET")

	// Main routes
	router.HandleFunc("/", handlers.HomeHandler).Methods("GET")
}
