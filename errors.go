package authgate

import "errors"

var (
	// ErrUserNotFound is returned when a directory lookup has no matching user.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountExists is returned by Register when the email is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrResetTokenInvalid is returned when a reset token is unknown or already consumed.
	ErrResetTokenInvalid = errors.New("invalid reset token")
	// ErrUserIDRequired is returned by CreateSession when the user id is empty.
	ErrUserIDRequired = errors.New("user id required")
	// ErrDirectoryRequired is returned by Build when no user directory was provided.
	ErrDirectoryRequired = errors.New("user directory required")
	// ErrEngineNotReady is returned when an Engine method is called before Build.
	ErrEngineNotReady = errors.New("engine not initialized")
)
