package persistent

import (
	"context"
	"errors"
	"fmt"

	"clubhub/internal/entity"
	"clubhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository interface {
	EnsureWallet(ctx context.Context, memberID string) (*entity.Wallet, error)
	GetByMember(ctx context.Context, memberID string) (*entity.Wallet, error)
	Debit(ctx context.Context, memberID string, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error)
	Credit(ctx context.Context, memberID string, txType entity.TransactionType, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error)
	Refund(ctx context.Context, memberID string, amount int, bookingID string) (*entity.Transaction, error)
	Transactions(ctx context.Context, memberID string, limit, offset int) ([]*entity.Transaction, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// EnsureWallet is an idempotent create-if-absent. The unique index on
// member_id resolves concurrent creates; a duplicate-key failure is treated
// as success-after-reread.
func (r *walletRepository) EnsureWallet(ctx context.Context, memberID string) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&walletModel).Error
	if err == nil {
		return ToWalletEntity(&walletModel), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	walletModel = model.WalletModel{MemberID: memberID}
	if err := r.db.WithContext(ctx).Create(&walletModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&walletModel).Error; err != nil {
				return nil, err
			}
			return ToWalletEntity(&walletModel), nil
		}
		return nil, err
	}
	return ToWalletEntity(&walletModel), nil
}

func (r *walletRepository) GetByMember(ctx context.Context, memberID string) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&walletModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToWalletEntity(&walletModel), nil
}

// Debit runs the balance check and the decrement under a row lock so that two
// concurrent debits cannot both pass the check against a stale balance.
func (r *walletRepository) Debit(ctx context.Context, memberID string, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error) {
	var txModel *model.WalletTransactionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, memberID)
		if err != nil {
			return err
		}
		txModel, err = applyDebit(tx, wallet, amount, refType, refID, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionEntity(txModel), nil
}

func (r *walletRepository) Credit(ctx context.Context, memberID string, txType entity.TransactionType, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error) {
	var txModel *model.WalletTransactionModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, memberID)
		if err != nil {
			return err
		}
		txModel, err = applyCredit(tx, wallet, txType, amount, refType, refID, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionEntity(txModel), nil
}

func (r *walletRepository) Refund(ctx context.Context, memberID string, amount int, bookingID string) (*entity.Transaction, error) {
	return r.Credit(ctx, memberID, entity.TransactionTypeRefund, amount, entity.ReferenceTypeBooking, bookingID, "booking refund")
}

func (r *walletRepository) Transactions(ctx context.Context, memberID string, limit, offset int) ([]*entity.Transaction, error) {
	var walletModel model.WalletModel
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&walletModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	var txModels []model.WalletTransactionModel
	query := r.db.WithContext(ctx).Where("wallet_id = ?", walletModel.ID).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(txModels))
	for i := range txModels {
		transactions[i] = ToTransactionEntity(&txModels[i])
	}
	return transactions, nil
}

// lockWallet takes the wallet row FOR UPDATE. Every balance mutation for a
// member funnels through this lock.
func lockWallet(tx *gorm.DB, memberID string) (*model.WalletModel, error) {
	var wallet model.WalletModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("member_id = ?", memberID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func applyDebit(tx *gorm.DB, wallet *model.WalletModel, amount int, refType entity.ReferenceType, refID, description string) (*model.WalletTransactionModel, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	if wallet.Balance < amount {
		return nil, fmt.Errorf("balance %d short of %d: %w", wallet.Balance, amount, entity.ErrInsufficientBalance)
	}

	balanceBefore := wallet.Balance
	wallet.Balance -= amount
	wallet.LifetimeSpent += amount
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	txModel := &model.WalletTransactionModel{
		WalletID:      wallet.ID,
		Type:          string(entity.TransactionTypeSpend),
		Amount:        -amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  wallet.Balance,
		ReferenceType: string(refType),
		ReferenceID:   refID,
		Description:   description,
	}
	if err := tx.Create(txModel).Error; err != nil {
		return nil, err
	}
	return txModel, nil
}

func applyCredit(tx *gorm.DB, wallet *model.WalletModel, txType entity.TransactionType, amount int, refType entity.ReferenceType, refID, description string) (*model.WalletTransactionModel, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	balanceBefore := wallet.Balance
	wallet.Balance += amount
	switch txType {
	case entity.TransactionTypePurchase, entity.TransactionTypeAdminCredit:
		wallet.LifetimePurchased += amount
	case entity.TransactionTypeRefund:
		// A refund undoes a spend, keeping balance = purchased - spent
		wallet.LifetimeSpent -= amount
	default:
		return nil, fmt.Errorf("unsupported credit type %q", txType)
	}
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	txModel := &model.WalletTransactionModel{
		WalletID:      wallet.ID,
		Type:          string(txType),
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  wallet.Balance,
		ReferenceType: string(refType),
		ReferenceID:   refID,
		Description:   description,
	}
	if err := tx.Create(txModel).Error; err != nil {
		return nil, err
	}
	return txModel, nil
}

// ensureWalletTx is the in-transaction form of EnsureWallet.
func ensureWalletTx(tx *gorm.DB, memberID string) (*model.WalletModel, error) {
	var wallet model.WalletModel
	err := tx.Where("member_id = ?", memberID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = model.WalletModel{MemberID: memberID}
	if err := tx.Create(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Where("member_id = ?", memberID).First(&wallet).Error; err != nil {
				return nil, err
			}
			return &wallet, nil
		}
		return nil, err
	}
	return &wallet, nil
}
