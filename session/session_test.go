package session

import (
	"path/filepath"
	"testing"

	"syncode/localstore"
	"syncode/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "local_storage.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(store.Close)
	return NewManager(store)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	m := newTestManager(t)

	err := m.Set(types.Session{
		UserID:   "u1",
		Username: "ada",
		Token:    "jwt-token",
		Role:     types.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	s, err := m.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !s.Present() {
		t.Fatalf("expected session to be present")
	}
	if s.UserID != "u1" || s.Username != "ada" || s.Token != "jwt-token" || s.Role != types.RoleAdmin {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestMissingTokenMeansNoPartialSession(t *testing.T) {
	m := newTestManager(t)

	// Leftover fields without a token must not surface as a session.
	if err := m.store.Set(KeyRole, types.RoleUser); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	if err := m.store.Set(KeyUsername, "ada"); err != nil {
		t.Fatalf("seed username: %v", err)
	}

	s, err := m.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.Present() {
		t.Fatalf("expected absent session, got %+v", s)
	}
	if s.Role != "" || s.Username != "" || s.UserID != "" {
		t.Fatalf("expected all fields absent without token, got %+v", s)
	}
}

func TestClearRemovesEverythingAndFiresHook(t *testing.T) {
	m := newTestManager(t)

	err := m.Set(types.Session{UserID: "u1", Username: "ada", Token: "jwt", Role: types.RoleUser})
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	cleared := false
	m.OnClear = func() { cleared = true }

	if err := m.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !cleared {
		t.Fatalf("expected OnClear hook to fire")
	}

	s, err := m.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.Present() {
		t.Fatalf("expected session gone after clear, got %+v", s)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local_storage.db")

	store, err := localstore.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	m := NewManager(store)
	if err := m.Set(types.Session{UserID: "u1", Username: "ada", Token: "jwt", Role: types.RoleUser}); err != nil {
		t.Fatalf("set: %v", err)
	}
	store.Close()

	reopened, err := localstore.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	s, err := NewManager(reopened).Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !s.Present() || s.Username != "ada" {
		t.Fatalf("expected session to survive restart, got %+v", s)
	}
}
