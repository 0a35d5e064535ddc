package models

import "time"

// Session is the persisted shape of a login session.
type Session struct {
	SessionID        string    `db:"session_id"`
	PlayerID         string    `db:"player_id"`
	RefreshTokenHash string    `db:"refresh_token_hash"`
	ExpiresAt        time.Time `db:"expires_at"`
	CreatedAt        time.Time `db:"created_at"`
}
