package authgate

import (
	"context"
	"errors"

	"github.com/MrEthical07/authgate/internal"
)

// RequestPasswordReset issues a fresh reset token for the account holding
// email and stores it on the user, replacing any earlier token. An unknown
// email fails with [ErrUserNotFound]; whether to hide that from end users is
// the caller's presentation concern.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	user, err := e.directory.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := internal.NewResetToken()
	if err != nil {
		return "", err
	}

	if err := e.directory.SetResetToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	e.metrics.Inc(MetricResetRequested)
	e.hook.emit(ctx, "password_reset_request", user.ID, "", true, nil, nil)
	return token, nil
}

// ConfirmPasswordReset redeems a reset token and installs a new password.
// The directory clears the token in the same operation that stores the hash,
// so a token authorizes at most one reset; a second confirmation with the
// same token fails with [ErrResetTokenInvalid].
func (e *Engine) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	if token == "" {
		e.observeResetRejected(ctx)
		return ErrResetTokenInvalid
	}

	user, err := e.directory.GetUserByResetToken(ctx, token)
	if errors.Is(err, ErrUserNotFound) {
		e.observeResetRejected(ctx)
		return ErrResetTokenInvalid
	}
	if err != nil {
		return err
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := e.directory.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	e.metrics.Inc(MetricResetConfirmed)
	e.hook.emit(ctx, "password_reset_confirm", user.ID, "", true, nil, nil)
	return nil
}

func (e *Engine) observeResetRejected(ctx context.Context) {
	e.metrics.Inc(MetricResetRejected)
	e.hook.emit(ctx, "password_reset_confirm", "", "", false, ErrResetTokenInvalid, nil)
}
