// Package session implements the client-side chat state machine: an ordered,
// append-only log of turns plus the submit guard that keeps a session to one
// outstanding request at a time.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"mobiwise/internal/models"
)

// State of the session's request lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting-response"
)

// WelcomeText opens every new chat.
const WelcomeText = "Hello! I'm MobiWise, your specialized AI mobile shop assistant. " +
	"I can help you find the best phone from our catalog or compare different models " +
	"based on your needs. What can I help you with today?"

// ErrBusy is returned when a submit arrives while a request is in flight.
// The input is not consumed; the caller may retry after resolution.
var ErrBusy = errors.New("a request is already in flight")

// ErrEmptyMessage is returned for blank input.
var ErrEmptyMessage = errors.New("message is empty")

// Message is one immutable turn in the session log.
type Message struct {
	ID                uuid.UUID            `json:"id"`
	Role              string               `json:"role"` // "user" or "model"
	Content           string               `json:"content"`
	Type              string               `json:"type,omitempty"`
	Phones            []models.PhoneRecord `json:"phones,omitempty"`
	ComparisonSummary string               `json:"comparison_summary,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// Sender is the remote chat call. client.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message string, history []models.ChatMessage, model string) (*models.ResponseEnvelope, error)
}

// Session holds one conversation. The mutex covers the log, state and epoch;
// the remote call itself runs unlocked so resets stay responsive while a
// request is in flight.
type Session struct {
	mu       sync.Mutex
	sender   Sender
	model    string
	messages []Message
	state    State
	epoch    int
}

// New creates a session opened with the canned welcome turn.
func New(sender Sender, model string) *Session {
	if model == "" {
		model = models.DefaultModel
	}
	s := &Session{
		sender: sender,
		model:  model,
		state:  StateIdle,
	}
	s.messages = []Message{welcomeMessage()}
	return s
}

// Submit sends one user message and blocks until the conversation resolves.
// While a request is in flight further submits return ErrBusy without
// appending anything. Transport and server failures do not return an error:
// they resolve the session with a refusal turn, exactly like the success
// path, so the caller never sees a stuck awaiting state.
//
// A NewChat or Clear issued while the request is in flight bumps the session
// epoch; the stale response is then discarded instead of being appended to
// the fresh log.
func (s *Session) Submit(ctx context.Context, text string) (*Message, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state == StateAwaitingResponse {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	history := s.historyLocked()
	s.append(Message{
		ID:        uuid.New(),
		Role:      "user",
		Content:   text,
		CreatedAt: time.Now(),
	})
	s.state = StateAwaitingResponse
	epoch := s.epoch
	s.mu.Unlock()

	envelope, err := s.sender.Send(ctx, text, history, s.model)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		// The session was reset while this request was in flight. The reply
		// belongs to a conversation that no longer exists; drop it. State was
		// already forced back to idle by the reset.
		return nil, nil
	}

	var reply Message
	if err != nil {
		reply = Message{
			ID:        uuid.New(),
			Role:      "model",
			Content:   err.Error(),
			Type:      models.TypeRefusal,
			CreatedAt: time.Now(),
		}
	} else {
		reply = Message{
			ID:                uuid.New(),
			Role:              "model",
			Content:           envelope.Text,
			Type:              envelope.Type,
			Phones:            envelope.Phones,
			ComparisonSummary: envelope.ComparisonSummary,
			CreatedAt:         time.Now(),
		}
	}

	s.append(reply)
	s.state = StateIdle
	return &reply, nil
}

// NewChat resets the log to the welcome turn. Nothing in flight is
// cancelled; a response resolving against the old epoch is discarded.
func (s *Session) NewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []Message{welcomeMessage()}
	s.state = StateIdle
	s.epoch++
}

// Clear empties the log entirely.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.state = StateIdle
	s.epoch++
}

// Messages returns a snapshot of the log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// State returns the current request-lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// historyLocked renders the log as wire history. Caller holds the mutex.
func (s *Session) historyLocked() []models.ChatMessage {
	history := make([]models.ChatMessage, 0, len(s.messages))
	for _, m := range s.messages {
		history = append(history, models.ChatMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return history
}

func (s *Session) append(m Message) {
	s.messages = append(s.messages, m)
}

func welcomeMessage() Message {
	return Message{
		ID:        uuid.New(),
		Role:      "model",
		Content:   WelcomeText,
		Type:      models.TypeMessage,
		CreatedAt: time.Now(),
	}
}
