package authgate

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/MrEthical07/authgate/password"
)

const basicScheme = "Basic "

// BasicAuth authenticates requests carrying an "Authorization: Basic" header
// holding base64("email:password"). Every decode failure — missing header,
// wrong scheme, invalid base64, no colon separator — degrades to an anonymous
// caller, never an error.
type BasicAuth struct {
	directory UserDirectory
	hasher    *password.Hasher

	metrics *Metrics
	audit   *auditHook
}

// NewBasicAuth creates a standalone Basic strategy. Engine-wired instances
// (with metrics and audit attached) come from [Engine.BasicStrategy].
func NewBasicAuth(directory UserDirectory, hasher *password.Hasher) *BasicAuth {
	return &BasicAuth{
		directory: directory,
		hasher:    hasher,
	}
}

// RequireAuth applies the shared path exclusion policy.
func (b *BasicAuth) RequireAuth(path string, excluded []string) bool {
	return RequireAuth(path, excluded)
}

// Identify resolves the request's Basic credentials to a user, or to an
// anonymous caller when the header is absent, undecodable, or wrong.
// Directory failures other than a lookup miss propagate.
func (b *BasicAuth) Identify(ctx context.Context, req Request) (*User, error) {
	email, pass, ok := b.extractCredentials(req)
	if !ok {
		return nil, nil
	}

	user, err := b.directory.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		b.observe(ctx, "", false)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !b.hasher.Verify(pass, user.PasswordHash) {
		b.observe(ctx, user.ID, false)
		return nil, nil
	}

	b.observe(ctx, user.ID, true)
	return user, nil
}

// extractCredentials pulls the email and password out of the Authorization
// header. It reports ok=false for anything that does not decode to
// "email:password"; the password may itself contain colons, so only the
// first separator splits.
func (b *BasicAuth) extractCredentials(req Request) (email, pass string, ok bool) {
	if req == nil {
		return "", "", false
	}

	header := req.Header("Authorization")
	if !strings.HasPrefix(header, basicScheme) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(basicScheme):])
	if err != nil {
		return "", "", false
	}

	email, pass, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return email, pass, true
}

func (b *BasicAuth) observe(ctx context.Context, userID string, accepted bool) {
	if accepted {
		b.metrics.Inc(MetricBasicAuthAccepted)
	} else {
		b.metrics.Inc(MetricBasicAuthRejected)
	}
	b.audit.emit(ctx, "basic_auth", userID, "", accepted, nil, nil)
}
