package domain

import "time"

// Session is the server-side record behind the session cookie. Token is
// opaque; the client never sees anything else. The principal snapshot lets
// the transport echo user details without a database round trip, but
// authorization always re-reads the stored account.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
