package domain

import "time"

// Session is a server-side login session. Only the SHA-256 hash of the opaque
// refresh token is stored; the raw token is returned to the client once.
type Session struct {
	SessionID        string    `json:"sessionID"` // UUID
	PlayerID         string    `json:"playerID"`
	RefreshTokenHash string    `json:"-"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
}

// IsExpired reports whether the session has passed its expiry.
func (s Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
