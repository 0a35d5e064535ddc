package services

import (
	"context"

	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/bce-online/bce_backend/internal/dto"
)

// PlayerSvcFacade covers registration, login and session lifecycle.
type PlayerSvcFacade interface {
	// RegisterPlayer runs the full bootstrap workflow in one transaction:
	// player row, state row, ledger account, wallet, initial grant, session.
	// Any failure rolls the whole sequence back.
	RegisterPlayer(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login verifies credentials and issues a fresh session + token pair.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// RefreshSession exchanges a valid refresh token for a new access token.
	RefreshSession(ctx context.Context, rawRefreshToken string) (*dto.AuthResponse, error)

	// Logout deletes the session behind the given refresh token.
	Logout(ctx context.Context, rawRefreshToken string) error

	// GetPlayerByID retrieves a player profile.
	GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)
}
