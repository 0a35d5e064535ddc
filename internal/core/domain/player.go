package domain

import "time"

// Player represents a registered player identity.
type Player struct {
	PlayerID     string     `json:"playerID"` // UUID
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	GoogleID     *string    `json:"-"` // set when the account was created via Google sign-in
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
}

// PlayerState holds the mutable simulation state attached to a player.
// The vigor regeneration formula itself lives in the tick workers, not here.
type PlayerState struct {
	PlayerID  string    `json:"playerID"`
	Vigor     int       `json:"vigor"`
	District  string    `json:"district"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultStartingVigor is the vigor every freshly bootstrapped player begins with.
const DefaultStartingVigor = 100
