package authgate

import (
	"context"
	"errors"
)

// Register creates an account for email with the given plaintext password.
// The password is hashed before it reaches the directory; a duplicate email
// fails with [ErrAccountExists]. Uniqueness under concurrent registration is
// the directory's responsibility, not the engine's.
func (e *Engine) Register(ctx context.Context, email, plaintext string) (*User, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	hash, err := e.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	user, err := e.directory.CreateUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.metrics.Inc(MetricRegisterDuplicate)
			e.hook.emit(ctx, "register", "", "", false, err, map[string]string{"email": email})
		}
		return nil, err
	}

	e.metrics.Inc(MetricRegisterSuccess)
	e.hook.emit(ctx, "register", user.ID, "", true, nil, nil)
	return user, nil
}

// Login reports whether email and plaintext name a valid account. An unknown
// email and a wrong password are indistinguishable to the caller: both report
// (false, nil). Only directory I/O failures surface as errors.
func (e *Engine) Login(ctx context.Context, email, plaintext string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}

	user, err := e.directory.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		e.observeLogin(ctx, "", false)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !e.hasher.Verify(plaintext, user.PasswordHash) {
		e.observeLogin(ctx, user.ID, false)
		return false, nil
	}

	e.observeLogin(ctx, user.ID, true)
	return true, nil
}

// UserByEmail looks up an account by email. Lookup misses return
// [ErrUserNotFound].
func (e *Engine) UserByEmail(ctx context.Context, email string) (*User, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	return e.directory.GetUserByEmail(ctx, email)
}

func (e *Engine) observeLogin(ctx context.Context, userID string, success bool) {
	if success {
		e.metrics.Inc(MetricLoginSuccess)
	} else {
		e.metrics.Inc(MetricLoginFailure)
	}
	e.hook.emit(ctx, "login", userID, "", success, nil, nil)
}
