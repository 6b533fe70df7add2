package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// BasicResponse is the body for health and status replies.
type BasicResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// HealthCheckHandler godoc
// @Summary Health check
// @Description Reports whether the server is up
// @Tags general
// @Produce json
// @Success 200 {object} BasicResponse
// @Router /health [get]
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := BasicResponse{
		Message: "Server is healthy",
		Status:  "success",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// HomeHandler godoc
// @Summary Home page
// @Description Returns a welcome message for the API server
// @Tags general
// @Produce text/plain
// @Success 200 {string} string "Welcome to the MobiWise API!"
// @Router / [get]
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	fmt.Fprintln(w, "Welcome to the MobiWise API!")
}
