package usecase

import (
	"context"
	"errors"
	"fmt"

	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/pkg/logger"
)

type WalletUseCase interface {
	GetWallet(ctx context.Context, memberID string) (*entity.Wallet, error)
	GetTransactions(ctx context.Context, memberID string, limit, offset int) ([]*entity.Transaction, error)
	AdminCredit(ctx context.Context, memberID string, amount int, description string) (*entity.Transaction, error)
	// VerifyLedger replays the member's transactions from zero and checks the
	// result against the stored balance.
	VerifyLedger(ctx context.Context, memberID string) (bool, error)
}

type walletUseCase struct {
	walletRepo persistent.WalletRepository
	logger     *logger.Logger
}

func NewWalletUseCase(walletRepo persistent.WalletRepository, logger *logger.Logger) WalletUseCase {
	return &walletUseCase{
		walletRepo: walletRepo,
		logger:     logger,
	}
}

func (uc *walletUseCase) GetWallet(ctx context.Context, memberID string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.EnsureWallet(ctx, memberID)
	if err != nil {
		uc.logger.Error("Failed to get wallet for member %s: %v", memberID, err)
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

func (uc *walletUseCase) GetTransactions(ctx context.Context, memberID string, limit, offset int) ([]*entity.Transaction, error) {
	transactions, err := uc.walletRepo.Transactions(ctx, memberID, limit, offset)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return []*entity.Transaction{}, nil
		}
		uc.logger.Error("Failed to get transactions for member %s: %v", memberID, err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

func (uc *walletUseCase) AdminCredit(ctx context.Context, memberID string, amount int, description string) (*entity.Transaction, error) {
	if _, err := uc.walletRepo.EnsureWallet(ctx, memberID); err != nil {
		uc.logger.Error("Failed to ensure wallet for member %s: %v", memberID, err)
		return nil, fmt.Errorf("failed to ensure wallet: %w", err)
	}

	tx, err := uc.walletRepo.Credit(ctx, memberID, entity.TransactionTypeAdminCredit, amount,
		entity.ReferenceTypeManual, "", description)
	if err != nil {
		uc.logger.Error("Failed to credit wallet for member %s: %v", memberID, err)
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	uc.logger.Info("Admin credit of %d bonos for member %s", amount, memberID)
	return tx, nil
}

func (uc *walletUseCase) VerifyLedger(ctx context.Context, memberID string) (bool, error) {
	wallet, err := uc.walletRepo.GetByMember(ctx, memberID)
	if err != nil {
		return false, err
	}

	transactions, err := uc.walletRepo.Transactions(ctx, memberID, 0, 0)
	if err != nil {
		return false, err
	}

	replayed, err := entity.ReplayBalance(transactions)
	if err != nil {
		uc.logger.Error("Ledger replay failed for member %s: %v", memberID, err)
		return false, nil
	}
	if replayed != wallet.Balance {
		uc.logger.Error("Ledger mismatch for member %s: replayed %d, stored %d", memberID, replayed, wallet.Balance)
		return false, nil
	}
	return true, nil
}
