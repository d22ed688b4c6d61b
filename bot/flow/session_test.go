package flow

import "testing"

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	const userID int64 = 42

	if s.Active(userID) {
		t.Fatal("fresh store reports an active session")
	}
	if _, ok := s.Get(userID); ok {
		t.Fatal("fresh store returned a session")
	}

	sess := s.Begin(userID)
	if sess.Step != StepDate {
		t.Errorf("new session starts at %v, want %v", sess.Step, StepDate)
	}
	if !s.Active(userID) {
		t.Error("store not active after Begin")
	}

	got, ok := s.Get(userID)
	if !ok || got != sess {
		t.Error("Get did not return the session created by Begin")
	}

	s.End(userID)
	if s.Active(userID) {
		t.Error("store still active after End")
	}
	s.End(userID) // idempotent
}

func TestStoreBeginDiscardsPrevious(t *testing.T) {
	s := NewStore()
	const userID int64 = 7

	first := s.Begin(userID)
	first.Step = StepAmount
	first.Record.Category = "Food"

	second := s.Begin(userID)
	if second == first {
		t.Fatal("Begin reused the old session")
	}
	if second.Step != StepDate {
		t.Errorf("restarted session at %v, want %v", second.Step, StepDate)
	}
	if second.Record.Category != "" {
		t.Errorf("restarted session kept category %q", second.Record.Category)
	}
}

func TestStoreIsolatesUsers(t *testing.T) {
	s := NewStore()
	s.Begin(1)
	if s.Active(2) {
		t.Error("session for user 1 visible to user 2")
	}
	s.Begin(2)
	s.End(1)
	if !s.Active(2) {
		t.Error("ending user 1's session removed user 2's")
	}
}
