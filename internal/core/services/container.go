package services

import (
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/platform/config"
	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/bce-online/bce_backend/pkg/retry"
)

// NewServiceContainer wires the concrete services behind their facades.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config, analytics *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	retryCfg := retry.Config{
		MaxRetries: cfg.RetryMaxRetries,
		BaseDelay:  cfg.RetryBaseDelay,
		MaxDelay:   cfg.RetryMaxDelay,
	}

	playerService := NewPlayerService(repos, cfg, retryCfg, analytics)
	ledgerService := NewLedgerService(repos.LedgerRepo, repos.TxManager, retryCfg, analytics)
	googleOAuthService := NewGoogleOAuthService(cfg, repos.PlayerRepo, playerService, analytics)

	return &portssvc.ServiceContainer{
		Player:      playerService,
		Ledger:      ledgerService,
		GoogleOAuth: googleOAuthService,
	}
}
