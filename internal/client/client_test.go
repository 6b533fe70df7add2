package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobiwise/internal/models"
)

// ============================================================================
// Test setup
// ============================================================================

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClientWithHTTPClient(server.URL, server.Client())
}

// ============================================================================
// Tests
// ============================================================================

func TestSend_Success(t *testing.T) {
	var gotRequest models.ChatRequest

	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ResponseEnvelope{
			Type: models.TypeMessage,
			Text: "What's your budget?",
		})
	})

	history := []models.ChatMessage{{Role: "model", Content: "welcome"}}
	envelope, err := c.Send(context.Background(), "need a phone", history, "gemini-pro-latest")

	require.NoError(t, err)
	assert.Equal(t, models.TypeMessage, envelope.Type)
	assert.Equal(t, "What's your budget?", envelope.Text)

	assert.Equal(t, "need a phone", gotRequest.Message)
	assert.Equal(t, history, gotRequest.History)
	assert.Equal(t, "gemini-pro-latest", gotRequest.Model)
}

func TestSend_ServerRefusalTextBecomesError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ResponseEnvelope{
			Type: models.TypeRefusal,
			Text: "Gemini API Error: quota exhausted",
		})
	})

	envelope, err := c.Send(context.Background(), "hi", nil, "")

	assert.Nil(t, envelope)
	require.Error(t, err)
	assert.Equal(t, "Gemini API Error: quota exhausted", err.Error())
}

func TestSend_UnparseableErrorBodyFallsBackToStatus(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.Send(context.Background(), "hi", nil, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error: 502")
}

func TestSend_TransportFailure(t *testing.T) {
	server, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := c.Send(context.Background(), "hi", nil, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach chat API")
}

func TestSend_MalformedSuccessBody(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := c.Send(context.Background(), "hi", nil, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}
