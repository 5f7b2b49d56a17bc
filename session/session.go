package session

import (
	"syncode/localstore"
	"syncode/types"
)

// Fixed local storage keys, shared with any other client pointed at the same
// store file.
const (
	KeyToken    = "token"
	KeyRole     = "role"
	KeyUserID   = "userId"
	KeyUsername = "username"
)

// Manager persists the authenticated identity for the lifetime of the client
// and across restarts. There is no client-side expiry: a token is held until
// the backend rejects it or Clear is called.
type Manager struct {
	store *localstore.Store

	// OnClear runs after a successful Clear. The client wires this to a full
	// view reset, the equivalent of a fresh unauthenticated load.
	OnClear func()
}

func NewManager(store *localstore.Store) *Manager {
	return &Manager{store: store}
}

// Set stores all identity fields in one transaction.
func (m *Manager) Set(s types.Session) error {
	return m.store.SetAll(map[string]string{
		KeyToken:    s.Token,
		KeyRole:     s.Role,
		KeyUserID:   s.UserID,
		KeyUsername: s.Username,
	})
}

// Get returns the stored session. If the token is absent the whole session is
// reported absent, regardless of what other fields are still around.
func (m *Manager) Get() (types.Session, error) {
	token, err := m.store.Get(KeyToken)
	if err != nil {
		return types.Session{}, err
	}
	if token == "" {
		return types.Session{}, nil
	}

	role, err := m.store.Get(KeyRole)
	if err != nil {
		return types.Session{}, err
	}
	userID, err := m.store.Get(KeyUserID)
	if err != nil {
		return types.Session{}, err
	}
	username, err := m.store.Get(KeyUsername)
	if err != nil {
		return types.Session{}, err
	}

	return types.Session{
		UserID:   userID,
		Username: username,
		Token:    token,
		Role:     role,
	}, nil
}

// Clear removes every identity field atomically, then fires OnClear.
func (m *Manager) Clear() error {
	err := m.store.RemoveAll(KeyToken, KeyRole, KeyUserID, KeyUsername)
	if err != nil {
		return err
	}
	if m.OnClear != nil {
		m.OnClear()
	}
	return nil
}
