package directory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MrEthical07/authgate"
)

// Memory is an in-process UserDirectory backed by maps under a single mutex.
// Email uniqueness is atomic because CreateUser checks and inserts while
// holding the write lock.
type Memory struct {
	mu      sync.RWMutex
	byID    map[string]*authgate.User
	byEmail map[string]string
}

// NewMemory returns an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]*authgate.User),
		byEmail: make(map[string]string),
	}
}

// CreateUser inserts a new account. A taken email fails with
// [authgate.ErrAccountExists]; exactly one of two concurrent registrations
// for the same email succeeds.
func (m *Memory) CreateUser(_ context.Context, email, passwordHash string) (*authgate.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[email]; taken {
		return nil, authgate.ErrAccountExists
	}

	user := &authgate.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	m.byID[user.ID] = user
	m.byEmail[email] = user.ID

	return cloneUser(user), nil
}

// GetUserByEmail looks up an account by email.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*authgate.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, authgate.ErrUserNotFound
	}
	return cloneUser(m.byID[id]), nil
}

// GetUserByID looks up an account by id.
func (m *Memory) GetUserByID(_ context.Context, userID string) (*authgate.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[userID]
	if !ok {
		return nil, authgate.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// GetUserByResetToken finds the account holding token. Empty tokens never
// match, so an account with no pending reset cannot be found this way.
func (m *Memory) GetUserByResetToken(_ context.Context, token string) (*authgate.User, error) {
	if token == "" {
		return nil, authgate.ErrUserNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.byID {
		if user.ResetToken == token {
			return cloneUser(user), nil
		}
	}
	return nil, authgate.ErrUserNotFound
}

// SetResetToken stores token on the user, replacing any prior token.
func (m *Memory) SetResetToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[userID]
	if !ok {
		return authgate.ErrUserNotFound
	}
	user.ResetToken = token
	return nil
}

// UpdatePassword stores newHash and clears the reset token under the same
// lock acquisition.
func (m *Memory) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[userID]
	if !ok {
		return authgate.ErrUserNotFound
	}
	user.PasswordHash = newHash
	user.ResetToken = ""
	return nil
}

// Len reports the number of stored accounts.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func cloneUser(u *authgate.User) *authgate.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
