package mapping

import (
	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/bce-online/bce_backend/internal/models"
)

// ToModelPlayer converts domain.Player to models.Player.
func ToModelPlayer(d domain.Player) models.Player {
	return models.Player{
		PlayerID:     d.PlayerID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		GoogleID:     d.GoogleID,
		CreatedAt:    d.CreatedAt,
		LastLoginAt:  d.LastLoginAt,
	}
}

// ToDomainPlayer converts models.Player to domain.Player.
func ToDomainPlayer(m models.Player) domain.Player {
	return domain.Player{
		PlayerID:     m.PlayerID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		GoogleID:     m.GoogleID,
		CreatedAt:    m.CreatedAt,
		LastLoginAt:  m.LastLoginAt,
	}
}

// ToModelPlayerState converts domain.PlayerState to models.PlayerState.
func ToModelPlayerState(d domain.PlayerState) models.PlayerState {
	return models.PlayerState{
		PlayerID:  d.PlayerID,
		Vigor:     d.Vigor,
		District:  d.District,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToModelSession converts domain.Session to models.Session.
func ToModelSession(d domain.Session) models.Session {
	return models.Session{
		SessionID:        d.SessionID,
		PlayerID:         d.PlayerID,
		RefreshTokenHash: d.RefreshTokenHash,
		ExpiresAt:        d.ExpiresAt,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainSession converts models.Session to domain.Session.
func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		SessionID:        m.SessionID,
		PlayerID:         m.PlayerID,
		RefreshTokenHash: m.RefreshTokenHash,
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
	}
}
