package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/middleware"
	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/bce-online/bce_backend/pkg/retry"
	"github.com/jackc/pgx/v5"
)

const (
	defaultEntriesPageSize = 20
	maxEntriesPageSize     = 100
)

// LedgerService is the only path through which other subsystems read balances
// or move currency. Every write goes through one serializable transaction and
// appends entries; nothing ever updates or deletes one.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	txManager  portsrepo.TransactionManager
	retryCfg   retry.Config
	analytics  *utils.PosthogClientWrapper
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, txManager portsrepo.TransactionManager, retryCfg retry.Config, analytics *utils.PosthogClientWrapper) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		retryCfg:   retryCfg,
		analytics:  analytics,
	}
}

// GetPlayerBalance derives the player's balance from the entry history. A
// player whose wallet has not been bootstrapped yet reads as 0.
func (s *LedgerService) GetPlayerBalance(ctx context.Context, playerID string) (int64, error) {
	return s.ledgerRepo.GetPlayerBalance(ctx, playerID)
}

// GetAccountBalance derives the balance of an arbitrary account.
func (s *LedgerService) GetAccountBalance(ctx context.Context, accountID int64) (int64, error) {
	return s.ledgerRepo.GetAccountBalance(ctx, accountID)
}

// ListPlayerEntries returns a page of the player's entry history, newest
// first. A player without a wallet has an empty history.
func (s *LedgerService) ListPlayerEntries(ctx context.Context, playerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntriesPageSize
	}
	if limit > maxEntriesPageSize {
		limit = maxEntriesPageSize
	}

	wallet, err := s.ledgerRepo.FindWalletByPlayerID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve wallet for player %s: %w", playerID, err)
	}
	if wallet == nil {
		return []domain.LedgerEntry{}, nil, nil
	}

	return s.ledgerRepo.ListEntriesByAccountID(ctx, wallet.AccountID, limit, nextToken)
}

// EarnWage transfers amountCents from the city treasury to the player. The
// treasury is allowed to run negative, so no affordability check applies.
func (s *LedgerService) EarnWage(ctx context.Context, playerID string, amountCents int64, actionID, memo *string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := retry.Do(ctx, s.retryCfg, logger, "earn_wage", func(ctx context.Context) error {
		return s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			treasury, err := s.ledgerRepo.FindSystemAccountInTx(ctx, tx, domain.SystemAccountCityTreasury)
			if err != nil {
				return err
			}

			wallet, err := s.walletForPlayerInTx(ctx, tx, playerID)
			if err != nil {
				return err
			}

			return s.ledgerRepo.TransferCents(ctx, tx, domain.TransferParams{
				FromAccount: treasury.AccountID,
				ToAccount:   wallet.AccountID,
				AmountCents: amountCents,
				EntryType:   domain.EntryTypeWage,
				ActionID:    actionID,
				Memo:        memo,
			})
		})
	})
	if err != nil {
		return err
	}

	logger.Info("Wage paid", slog.String("player_id", playerID), slog.Int64("amount_cents", amountCents))
	s.analytics.Enqueue(playerID, "wage_earned", map[string]any{"amount_cents": amountCents})
	return nil
}

// PayRent transfers amountCents from the player to the rent sink. The
// affordability check and the transfer share one transaction so the balance
// the check sees is the balance the entry debits.
func (s *LedgerService) PayRent(ctx context.Context, playerID string, amountCents int64, actionID, memo *string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := retry.Do(ctx, s.retryCfg, logger, "pay_rent", func(ctx context.Context) error {
		return s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			sink, err := s.ledgerRepo.FindSystemAccountInTx(ctx, tx, domain.SystemAccountRentSink)
			if err != nil {
				return err
			}

			wallet, err := s.walletForPlayerInTx(ctx, tx, playerID)
			if err != nil {
				return err
			}

			balance, err := s.ledgerRepo.GetAccountBalanceInTx(ctx, tx, wallet.AccountID)
			if err != nil {
				return err
			}
			if balance < amountCents {
				return apperrors.NewAppError(http.StatusUnprocessableEntity,
					fmt.Sprintf("balance %d cents cannot cover rent of %d cents", balance, amountCents),
					apperrors.ErrInsufficientFunds)
			}

			return s.ledgerRepo.TransferCents(ctx, tx, domain.TransferParams{
				FromAccount: wallet.AccountID,
				ToAccount:   sink.AccountID,
				AmountCents: amountCents,
				EntryType:   domain.EntryTypeRent,
				ActionID:    actionID,
				Memo:        memo,
			})
		})
	})
	if err != nil {
		return err
	}

	logger.Info("Rent paid", slog.String("player_id", playerID), slog.Int64("amount_cents", amountCents))
	s.analytics.Enqueue(playerID, "rent_paid", map[string]any{"amount_cents": amountCents})
	return nil
}

// walletForPlayerInTx resolves the player's wallet inside the transaction.
// A missing wallet here means the player never completed bootstrap.
func (s *LedgerService) walletForPlayerInTx(ctx context.Context, tx pgx.Tx, playerID string) (*domain.PlayerWallet, error) {
	wallet, err := s.ledgerRepo.FindWalletByPlayerIDInTx(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no wallet exists for player %s", playerID))
	}
	return wallet, nil
}
