package session

import "time"

// Record is the stored metadata for one session: the owning user and the
// creation timestamp the expiry policy is measured from. Idle activity never
// updates CreatedAt.
type Record struct {
	UserID    string
	CreatedAt int64 // unix seconds
}

// ExpiredAt reports whether the record is past its lifetime at the given
// instant. A duration of zero (or less) means the session never expires by
// time. The boundary itself counts as expired.
func (r Record) ExpiredAt(now time.Time, duration time.Duration) bool {
	if duration <= 0 {
		return false
	}
	deadline := time.Unix(r.CreatedAt, 0).Add(duration)
	return !now.Before(deadline)
}
