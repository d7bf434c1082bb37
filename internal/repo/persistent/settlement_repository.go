package persistent

import (
	"context"
	"errors"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/model"

	"gorm.io/gorm"
)

type SettlementRepository interface {
	// ApplyMembership records the event and ensures a wallet exists, in one
	// transaction. A replayed event id returns ErrDuplicateEvent.
	ApplyMembership(ctx context.Context, event *entity.SettlementEvent) error
	// ApplyBonusPurchase records the event and credits the wallet with the
	// package amount, in one transaction. A replayed event id returns
	// ErrDuplicateEvent without touching the wallet.
	ApplyBonusPurchase(ctx context.Context, event *entity.SettlementEvent, amount int, description string) (*entity.Transaction, error)
}

type settlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) SettlementRepository {
	return &settlementRepository{db: db}
}

func recordEventTx(tx *gorm.DB, event *entity.SettlementEvent) error {
	eventModel := &model.SettlementEventModel{
		EventID:     event.EventID,
		Kind:        string(event.Kind),
		MemberID:    event.MemberID,
		PackageID:   event.PackageID,
		PaymentRef:  event.PaymentRef,
		ProcessedAt: time.Now().UTC(),
	}
	if err := tx.Create(eventModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrDuplicateEvent
		}
		return err
	}
	return nil
}

func (r *settlementRepository) ApplyMembership(ctx context.Context, event *entity.SettlementEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recordEventTx(tx, event); err != nil {
			return err
		}
		_, err := ensureWalletTx(tx, event.MemberID)
		return err
	})
}

func (r *settlementRepository) ApplyBonusPurchase(ctx context.Context, event *entity.SettlementEvent, amount int, description string) (*entity.Transaction, error) {
	var txModel *model.WalletTransactionModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recordEventTx(tx, event); err != nil {
			return err
		}
		wallet, err := ensureWalletTx(tx, event.MemberID)
		if err != nil {
			return err
		}
		txModel, err = applyCredit(tx, wallet, entity.TransactionTypePurchase, amount,
			entity.ReferenceTypePurchase, event.EventID, description)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ToTransactionEntity(txModel), nil
}
