package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"mobiwise/internal/models"
	"mobiwise/internal/repositories"
	"mobiwise/internal/services"
)

// ChatHandler proxies chat requests to the language model provider. Every
// request is independent: the handler holds only process-wide configuration
// and stateless collaborators, so no locking is needed across requests.
type ChatHandler struct {
	provider  services.ChatProvider
	usageRepo repositories.UsageRepository // nil when Redis is unavailable
	apiKey    string
	logger    *log.Logger
}

// NewChatHandler creates a chat handler. The API key is injected rather than
// read from the environment so the missing-credential path is testable.
func NewChatHandler(provider services.ChatProvider, usageRepo repositories.UsageRepository, apiKey string, logger *log.Logger) *ChatHandler {
	return &ChatHandler{
		provider:  provider,
		usageRepo: usageRepo,
		apiKey:    apiKey,
		logger:    logger,
	}
}

// Chat handles chat requests from the frontend
// @Summary Chat with the shopping assistant
// @Description Send a message with conversation history and get a structured reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat request with message, optional history and model"
// @Success 200 {object} models.ResponseEnvelope
// @Failure 400 {object} models.ResponseEnvelope
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ResponseEnvelope
// @Router /api/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	// Handle preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Only accept POST
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Method not allowed"})
		return
	}

	// A missing credential is a deployment problem. The fixed prefix keeps
	// it distinguishable from a model-side refusal in the chat thread.
	if h.apiKey == "" || h.provider == nil {
		h.logger.Printf("CRITICAL: GEMINI_API_KEY is missing")
		h.sendEnvelope(w, http.StatusInternalServerError, models.ResponseEnvelope{
			Type: models.TypeRefusal,
			Text: "Developer Config Error: GEMINI_API_KEY is missing in .env",
		})
		return
	}

	var request models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.sendEnvelope(w, http.StatusBadRequest, models.ResponseEnvelope{
			Type: models.TypeRefusal,
			Text: "Invalid request body: " + err.Error(),
		})
		return
	}

	if request.Message == "" {
		h.sendEnvelope(w, http.StatusBadRequest, models.ResponseEnvelope{
			Type: models.TypeRefusal,
			Text: "Message is required",
		})
		return
	}

	model := request.Model
	if model == "" {
		model = models.DefaultModel
	}

	history := services.NormalizeHistory(request.History)

	reply, usage, err := h.provider.Generate(r.Context(), model, history, request.Message)
	if err != nil {
		h.logger.Printf("Provider call failed: %v", err)
		h.recordFailure(r, model)
		h.sendEnvelope(w, http.StatusInternalServerError, models.ResponseEnvelope{
			Type: models.TypeRefusal,
			Text: "Gemini API Error: " + err.Error(),
		})
		return
	}

	envelope := services.InterpretResponse(reply, h.logger)

	h.recordUsage(r, model, envelope.Type, usage)
	h.sendEnvelope(w, http.StatusOK, envelope)
}

// Stats exposes accumulated usage counters
// @Summary Usage statistics
// @Description Aggregate request and token counters (no conversation content)
// @Tags stats
// @Produce json
// @Success 200 {object} repositories.UsageSnapshot
// @Failure 503 {object} models.ErrorResponse
// @Router /api/stats [get]
func (h *ChatHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.usageRepo == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Usage stats are disabled (Redis not available)"})
		return
	}

	snapshot, err := h.usageRepo.Snapshot(r.Context())
	if err != nil {
		h.logger.Printf("Failed to read usage snapshot: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Failed to read usage stats"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(snapshot)
}

// recordUsage is best effort: a stats failure never fails a chat request.
func (h *ChatHandler) recordUsage(r *http.Request, model, responseType string, usage services.TokenUsage) {
	if h.usageRepo == nil {
		return
	}
	if err := h.usageRepo.RecordRequest(r.Context(), model, responseType, usage); err != nil {
		h.logger.Printf("Failed to record usage stats: %v", err)
	}
}

func (h *ChatHandler) recordFailure(r *http.Request, model string) {
	if h.usageRepo == nil {
		return
	}
	if err := h.usageRepo.RecordFailure(r.Context(), model); err != nil {
		h.logger.Printf("Failed to record failure stats: %v", err)
	}
}

func (h *ChatHandler) sendEnvelope(w http.ResponseWriter, status int, envelope models.ResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		h.logger.Printf("Failed to encode response: %v", err)
	}
}
