package authgate

import (
	"context"
	"strconv"
	"sync"
	"testing"
)

// mockDirectory is the in-package UserDirectory used across the root tests.
// failWith, when set, is returned from every method to simulate backend
// outages.
type mockDirectory struct {
	mu       sync.Mutex
	nextID   int
	byID     map[string]*User
	byEmail  map[string]string
	failWith error
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (d *mockDirectory) CreateUser(_ context.Context, email, passwordHash string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return nil, d.failWith
	}
	if _, taken := d.byEmail[email]; taken {
		return nil, ErrAccountExists
	}
	d.nextID++
	user := &User{
		ID:           "u" + strconv.Itoa(d.nextID),
		Email:        email,
		PasswordHash: passwordHash,
	}
	d.byID[user.ID] = user
	d.byEmail[email] = user.ID
	copied := *user
	return &copied, nil
}

func (d *mockDirectory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return nil, d.failWith
	}
	id, ok := d.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *d.byID[id]
	return &copied, nil
}

func (d *mockDirectory) GetUserByID(_ context.Context, userID string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return nil, d.failWith
	}
	user, ok := d.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (d *mockDirectory) GetUserByResetToken(_ context.Context, token string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return nil, d.failWith
	}
	if token == "" {
		return nil, ErrUserNotFound
	}
	for _, user := range d.byID {
		if user.ResetToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (d *mockDirectory) SetResetToken(_ context.Context, userID, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}
	user, ok := d.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.ResetToken = token
	return nil
}

func (d *mockDirectory) UpdatePassword(_ context.Context, userID, newHash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}
	user, ok := d.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = newHash
	user.ResetToken = ""
	return nil
}

// seed registers a user directly, bypassing the engine.
func (d *mockDirectory) seed(t *testing.T, email, passwordHash string) *User {
	t.Helper()
	user, err := d.CreateUser(context.Background(), email, passwordHash)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// fakeRequest is a hand-rolled Request for strategy tests.
type fakeRequest struct {
	headers map[string]string
	cookies map[string]string
	path    string
}

func (r *fakeRequest) Header(name string) string {
	return r.headers[name]
}

func (r *fakeRequest) Cookie(name string) (string, bool) {
	v, ok := r.cookies[name]
	return v, ok
}

func (r *fakeRequest) Path() string {
	return r.path
}

func requestWithCookie(name, value string) *fakeRequest {
	return &fakeRequest{cookies: map[string]string{name: value}}
}

// testEngine builds an engine over dir with fast password parameters so the
// account tests stay quick.
func testEngine(t *testing.T, dir UserDirectory) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Password.Memory = 8192
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1

	engine, err := New().
		WithConfig(cfg).
		WithUserDirectory(dir).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}
