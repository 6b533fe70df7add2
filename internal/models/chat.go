package models

// Response envelope types. The model is instructed to classify every reply
// as exactly one of these.
const (
	TypeMessage        = "message"
	TypeRecommendation = "recommendation"
	TypeComparison     = "comparison"
	TypeRefusal        = "refusal"
)

// DefaultModel is the Gemini tier used when the client does not pick one.
const DefaultModel = "gemini-flash-latest"

// ChatMessage represents a single turn of conversation history as sent by
// the client. Role is "user", "model" or "assistant" ("assistant" is
// accepted for compatibility and remapped before the provider call).
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string        `json:"message"`           // The current user message
	History []ChatMessage `json:"history,omitempty"` // Previous conversation history
	Model   string        `json:"model,omitempty"`   // Gemini model, defaults to DefaultModel
}

// ResponseEnvelope is the only reply shape the client ever receives for a
// chat request, regardless of what the provider produced. Type and Text are
// always set; Phones and ComparisonSummary only accompany recommendation
// and comparison replies.
type ResponseEnvelope struct {
	Type              string        `json:"type"`
	Text              string        `json:"text"`
	Phones            []PhoneRecord `json:"phones,omitempty"`
	ComparisonSummary string        `json:"comparison_summary,omitempty"`
}

// IsValidType reports whether t is one of the four envelope types.
func IsValidType(t string) bool {
	switch t {
	case TypeMessage, TypeRecommendation, TypeComparison, TypeRefusal:
		return true
	}
	return false
}

// ErrorResponse is the minimal error body for non-envelope failures
// (wrong HTTP verb).
type ErrorResponse struct {
	Error string `json:"error"`
}
