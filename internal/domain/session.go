package domain

import "time"

// Session represents one authenticated login instance. A user may hold any
// number of concurrent sessions; each register/login creates a fresh one.
// There is no server-side revocation: a session terminates only by reaching
// its expiry, and logout is purely client-side token deletion.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active reports whether the session is still valid at the given instant.
// Validity is a strict before-expiry comparison.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
