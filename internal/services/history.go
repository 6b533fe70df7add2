package services

import (
	"strings"

	"google.golang.org/genai"

	"mobiwise/internal/models"
)

// errorMarkers identify turns that are artifacts of earlier failures (a
// surfaced provider error rendered into the thread). Replaying them to the
// model as conversation context confuses it, so they are filtered out.
var errorMarkers = []string{
	"API error",
	"Internal Server Error",
}

// NormalizeHistory converts the client's conversation history into the
// content sequence the Gemini API accepts. It drops empty and error-artifact
// turns, remaps "assistant" to "model", and trims leading model turns:
// Gemini rejects a history that does not start with a user turn, so this is
// a hard precondition of the provider call, not a cleanup nicety.
//
// The result is either empty or starts with a user turn; order is otherwise
// preserved.
func NormalizeHistory(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))

	for _, h := range history {
		if h.Content == "" || isErrorArtifact(h.Content) {
			continue
		}

		role := h.Role
		if role == "assistant" {
			role = "model"
		}

		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(h.Content)},
		})
	}

	// Gemini requires the first history entry to come from the user.
	for len(contents) > 0 && contents[0].Role == "model" {
		contents = contents[1:]
	}

	return contents
}

func isErrorArtifact(content string) bool {
	for _, marker := range errorMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}
