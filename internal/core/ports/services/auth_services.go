package services

import (
	"context"

	"github.com/bce-online/bce_backend/internal/dto"
)

// GoogleOAuthSvcFacade handles the Google sign-in code exchange. A player who
// signs in with an unknown Google account goes through the same bootstrap
// workflow as password registration.
type GoogleOAuthSvcFacade interface {
	ExchangeCode(ctx context.Context, code string) (*dto.AuthResponse, error)
}
