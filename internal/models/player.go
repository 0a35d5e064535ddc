package models

import "time"

// Player is the persisted shape of a player identity.
type Player struct {
	PlayerID     string     `db:"player_id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	GoogleID     *string    `db:"google_id"` // Nullable
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"` // Nullable
}

// PlayerState is the persisted auxiliary state row created at bootstrap.
type PlayerState struct {
	PlayerID  string    `db:"player_id"`
	Vigor     int       `db:"vigor"`
	District  string    `db:"district"`
	UpdatedAt time.Time `db:"updated_at"`
}
