package dto

import (
	"time"

	"github.com/bce-online/bce_backend/internal/core/domain"
)

// PlayerResponse is the public shape of a player.
type PlayerResponse struct {
	PlayerID    string     `json:"playerID"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// ToPlayerResponse converts domain.Player to PlayerResponse.
func ToPlayerResponse(p *domain.Player) PlayerResponse {
	return PlayerResponse{
		PlayerID:    p.PlayerID,
		Username:    p.Username,
		CreatedAt:   p.CreatedAt,
		LastLoginAt: p.LastLoginAt,
	}
}
