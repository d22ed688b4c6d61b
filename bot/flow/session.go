package flow

import (
	"sync"

	"github.com/m3rciful/expensebot/expense"
)

// Step identifies the user's position in the capture dialogue.
type Step int

const (
	// StepDate awaits the expense date (menu choice or typed dd.mm.yyyy).
	StepDate Step = iota
	// StepCategory awaits a category label from the catalog.
	StepCategory
	// StepAmount awaits a positive decimal amount.
	StepAmount
	// StepComment awaits a free-text comment or /skip.
	StepComment
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepCategory:
		return "category"
	case StepAmount:
		return "amount"
	case StepComment:
		return "comment"
	}
	return "unknown"
}

// Session is the mutable scratch state of one dialogue. Fields of Record are
// filled strictly in step order; Step decides which validator runs next.
type Session struct {
	Step   Step
	Record expense.Record
}

// Store maps user IDs to their active sessions. Events for one user arrive in
// order, but different users are served concurrently, hence the lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Begin creates a fresh session for the user, discarding any previous one.
// A re-triggered entry point always starts clean (last entry wins).
func (s *Store) Begin(userID int64) *Session {
	sess := &Session{Step: StepDate}
	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the user's active session, if any.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// End destroys the user's session. Safe to call when none exists.
func (s *Store) End(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Active reports whether the user has a dialogue in flight.
func (s *Store) Active(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}
