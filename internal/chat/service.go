package chat

import (
	"context"
	"time"

	"github.com/chatbox-platform/chatbox/internal/metrics"
	"github.com/chatbox-platform/chatbox/internal/prompt"
	"github.com/chatbox-platform/chatbox/internal/transcript"
	"github.com/chatbox-platform/chatbox/internal/visits"
)

// Completer is the capability the gateway needs from a model provider:
// an ordered message list in, generated text or an error out.
type Completer interface {
	Complete(ctx context.Context, messages []prompt.Message) (string, error)
}

// InferenceError wraps an upstream provider failure so handlers can map
// it to a 502 without leaking raw provider internals elsewhere.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return "inference error: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Service orchestrates one chat exchange: resolve the session, record the
// user turn, assemble the outbound payload, call the provider, record the
// reply.
type Service struct {
	transcripts *transcript.Store
	visits      *visits.Tracker
	completer   Completer
}

func NewService(transcripts *transcript.Store, visitTracker *visits.Tracker, completer Completer) *Service {
	return &Service{
		transcripts: transcripts,
		visits:      visitTracker,
		completer:   completer,
	}
}

// NewSession creates a fresh session and an empty visit bucket under the
// same key, so the frontend can reuse the session key as a visitor key.
func (s *Service) NewSession() string {
	key := s.transcripts.CreateSession()
	s.visits.Init(key)
	metrics.SessionsCreatedTotal.Inc()
	return key
}

// Chat runs the full exchange for one user message and returns the
// assistant's reply.
//
// The user turn is recorded before anything can fail and is never rolled
// back: a transcript that ends in a user turn with no reply is the audit
// trail of a failed attempt. On success the transcript gains exactly two
// turns (user, assistant).
//
// The provider call happens outside any store lock; the user-turn append
// and the reply append are separate critical sections.
func (s *Service) Chat(ctx context.Context, sessionID, message string, imageURLs []string) (string, error) {
	// Unknown session keys are auto-provisioned: a client that lost the
	// handshake still gets a conversation rather than an error.
	s.transcripts.GetOrCreate(sessionID)
	s.transcripts.Append(sessionID, transcript.Turn{Role: transcript.RoleUser, Content: message})

	messages, err := prompt.Build(s.transcripts.Snapshot(sessionID), message, imageURLs)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := s.completer.Complete(ctx, messages)
	metrics.InferenceRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues("error").Inc()
		return "", &InferenceError{Err: err}
	}
	metrics.InferenceRequestsTotal.WithLabelValues("success").Inc()

	s.transcripts.Append(sessionID, transcript.Turn{Role: transcript.RoleAssistant, Content: reply})
	return reply, nil
}

// HistoryEntry is one transcript turn projected for display.
type HistoryEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// History projects the stored transcript into display form: user turns
// become "You", assistant turns "AI". An unknown session yields an empty
// list, never an error.
func (s *Service) History(sessionID string) []HistoryEntry {
	turns := s.transcripts.Snapshot(sessionID)
	entries := make([]HistoryEntry, 0, len(turns))
	for _, turn := range turns {
		sender := "AI"
		if turn.Role == transcript.RoleUser {
			sender = "You"
		}
		entries = append(entries, HistoryEntry{Sender: sender, Text: turn.Content})
	}
	return entries
}
