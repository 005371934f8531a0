package transcript

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxTurns is the bounded transcript window applied when no
// explicit limit is configured.
const DefaultMaxTurns = 30

// Store owns the session→transcript map behind a mutex. All structural
// mutation goes through Append, which serializes concurrent callers:
// whole-map locking is deliberate, contention is expected to be low.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]Turn
	maxTurns int
}

// NewStore creates a transcript store that retains at most maxTurns turns
// per session, evicting oldest-first. A non-positive maxTurns falls back
// to DefaultMaxTurns.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		sessions: make(map[string][]Turn),
		maxTurns: maxTurns,
	}
}

// CreateSession generates a fresh session key and initializes an empty
// transcript under it.
func (s *Store) CreateSession() string {
	key := uuid.New().String()
	s.mu.Lock()
	s.sessions[key] = []Turn{}
	s.mu.Unlock()
	return key
}

// GetOrCreate ensures a transcript exists under key and returns a copy of
// its current turns. Unknown keys are auto-provisioned rather than
// rejected: a client that skipped CreateSession still gets a working
// conversation.
func (s *Store) GetOrCreate(key string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[key]; !ok {
		s.sessions[key] = []Turn{}
	}
	return copyTurns(s.sessions[key])
}

// Append adds turn to the end of the session's transcript, creating the
// session if needed, then trims to the bounded window. It cannot fail.
func (s *Store) Append(key string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.sessions[key], turn)
	if len(turns) > s.maxTurns {
		// Drop oldest turns; reallocate so the backing array does not
		// grow without bound across evictions.
		turns = copyTurns(turns[len(turns)-s.maxTurns:])
	}
	s.sessions[key] = turns
}

// Snapshot returns a copy of the transcript for key, in conversational
// order. An unknown key yields an empty slice, never an error.
func (s *Store) Snapshot(key string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTurns(s.sessions[key])
}

func copyTurns(turns []Turn) []Turn {
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}
