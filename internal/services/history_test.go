package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"mobiwise/internal/models"
)

// ============================================================================
// Helpers
// ============================================================================

func turn(role, content string) models.ChatMessage {
	return models.ChatMessage{Role: role, Content: content}
}

func roles(contents []*genai.Content) []string {
	out := make([]string, len(contents))
	for i, c := range contents {
		out[i] = c.Role
	}
	return out
}

// ============================================================================
// Leading-turn invariant
// ============================================================================

func TestNormalizeHistory_DropsLeadingModelTurns(t *testing.T) {
	history := []models.ChatMessage{
		turn("model", "welcome"),
		turn("model", "anything else?"),
		turn("user", "hi"),
		turn("model", "hello"),
	}

	normalized := NormalizeHistory(history)

	require.Len(t, normalized, 2)
	assert.Equal(t, "user", normalized[0].Role)
	assert.Equal(t, "hi", normalized[0].Parts[0].Text)
	assert.Equal(t, "model", normalized[1].Role)
}

func TestNormalizeHistory_AllModelTurnsYieldsEmpty(t *testing.T) {
	history := []models.ChatMessage{
		turn("model", "welcome"),
		turn("model", "still here"),
	}

	normalized := NormalizeHistory(history)

	assert.Empty(t, normalized)
}

func TestNormalizeHistory_EmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeHistory(nil))
	assert.Empty(t, NormalizeHistory([]models.ChatMessage{}))
}

func TestNormalizeHistory_AlwaysUserFirstOrEmpty(t *testing.T) {
	tests := []struct {
		name    string
		history []models.ChatMessage
	}{
		{"user first", []models.ChatMessage{turn("user", "a"), turn("model", "b")}},
		{"model first", []models.ChatMessage{turn("model", "a"), turn("user", "b")}},
		{"alternating", []models.ChatMessage{turn("model", "a"), turn("user", "b"), turn("model", "c"), turn("user", "d")}},
		{"only model", []models.ChatMessage{turn("model", "a")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := NormalizeHistory(tt.history)
			if len(normalized) > 0 {
				assert.Equal(t, "user", normalized[0].Role)
			}
		})
	}
}

// ============================================================================
// Filtering and remapping
// ============================================================================

func TestNormalizeHistory_FiltersErrorArtifacts(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", "hi"),
		turn("model", "API error: 500 something broke"),
		turn("user", "still there?"),
	}

	normalized := NormalizeHistory(history)

	require.Len(t, normalized, 2)
	assert.Equal(t, "hi", normalized[0].Parts[0].Text)
	assert.Equal(t, "still there?", normalized[1].Parts[0].Text)
}

func TestNormalizeHistory_FiltersInternalServerError(t *testing.T) {
	history := []models.ChatMessage{
		turn("model", "Internal Server Error"),
		turn("user", "hello"),
	}

	normalized := NormalizeHistory(history)

	require.Len(t, normalized, 1)
	assert.Equal(t, "user", normalized[0].Role)
}

func TestNormalizeHistory_RemapsAssistantToModel(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", "hi"),
		turn("assistant", "hello there"),
	}

	normalized := NormalizeHistory(history)

	require.Len(t, normalized, 2)
	assert.Equal(t, "model", normalized[1].Role)
}

func TestNormalizeHistory_DropsEmptyContent(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", ""),
		turn("user", "real message"),
	}

	normalized := NormalizeHistory(history)

	require.Len(t, normalized, 1)
	assert.Equal(t, "real message", normalized[0].Parts[0].Text)
}

func TestNormalizeHistory_PreservesOrder(t *testing.T) {
	history := []models.ChatMessage{
		turn("user", "first"),
		turn("model", "second"),
		turn("user", "third"),
	}

	normalized := NormalizeHistory(history)

	require.Len(t, normalized, 3)
	assert.Equal(t, []string{"user", "model", "user"}, roles(normalized))
	assert.Equal(t, "first", normalized[0].Parts[0].Text)
	assert.Equal(t, "second", normalized[1].Parts[0].Text)
	assert.Equal(t, "third", normalized[2].Parts[0].Text)
}
