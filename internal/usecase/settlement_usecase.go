package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhub/internal/clients"
	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type SettlementUseCase interface {
	// Apply is idempotent on the event id: replays return nil without any
	// wallet effect.
	Apply(ctx context.Context, event *entity.SettlementEvent) error
}

type settlementUseCase struct {
	settlementRepo persistent.SettlementRepository
	members        clients.MemberDirectory
	catalog        clients.Catalog
	redisClient    *redis.Client
	logger         *logger.Logger
}

func NewSettlementUseCase(
	settlementRepo persistent.SettlementRepository,
	members clients.MemberDirectory,
	catalog clients.Catalog,
	redisClient *redis.Client,
	logger *logger.Logger,
) SettlementUseCase {
	return &settlementUseCase{
		settlementRepo: settlementRepo,
		members:        members,
		catalog:        catalog,
		redisClient:    redisClient,
		logger:         logger,
	}
}

func (uc *settlementUseCase) Apply(ctx context.Context, event *entity.SettlementEvent) error {
	if event.EventID == "" || event.MemberID == "" {
		return fmt.Errorf("settlement event missing id or member: %w", entity.ErrInvalidState)
	}

	// Fast-path: skip events we already saw. The settlement_events primary
	// key stays authoritative; the cache only saves a round trip.
	cacheKey := "settlement:" + event.EventID
	if uc.redisClient != nil {
		if seen, err := uc.redisClient.Exists(ctx, cacheKey).Result(); err == nil && seen > 0 {
			uc.logger.Info("Settlement %s already processed (cache), skipping", event.EventID)
			return nil
		}
	}

	var err error
	switch event.Kind {
	case entity.SettlementKindMembership:
		err = uc.applyMembership(ctx, event)
	case entity.SettlementKindBonusPurchase:
		err = uc.applyBonusPurchase(ctx, event)
	default:
		return fmt.Errorf("unknown settlement kind %q: %w", event.Kind, entity.ErrInvalidState)
	}

	if errors.Is(err, entity.ErrDuplicateEvent) {
		// Confirmed replay; absorb silently
		uc.logger.Info("Settlement %s already processed, skipping", event.EventID)
		err = nil
	}
	if err != nil {
		return err
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, cacheKey, 1, 24*time.Hour)
	}
	return nil
}

func (uc *settlementUseCase) applyMembership(ctx context.Context, event *entity.SettlementEvent) error {
	err := uc.settlementRepo.ApplyMembership(ctx, event)
	if err != nil && !errors.Is(err, entity.ErrDuplicateEvent) {
		uc.logger.Error("Failed to apply membership settlement %s: %v", event.EventID, err)
		return err
	}

	// Activation lives in the identity service and is idempotent there, so it
	// is attempted on replays too: if the event row exists but the activation
	// call failed last time, the replay repairs it. A failed activation keeps
	// the event un-acked so the message is redelivered.
	if aerr := uc.members.ActivateMember(ctx, event.MemberID); aerr != nil {
		uc.logger.Error("Failed to activate member %s after settlement %s: %v", event.MemberID, event.EventID, aerr)
		return fmt.Errorf("failed to activate member %s: %w", event.MemberID, aerr)
	}

	if err == nil {
		uc.logger.Info("Membership settlement %s applied for member %s", event.EventID, event.MemberID)
	}
	return err
}

func (uc *settlementUseCase) applyBonusPurchase(ctx context.Context, event *entity.SettlementEvent) error {
	pkg, err := uc.catalog.GetBonusPackage(ctx, event.PackageID)
	if err != nil {
		uc.logger.Error("Failed to resolve package %s for settlement %s: %v", event.PackageID, event.EventID, err)
		return fmt.Errorf("failed to resolve package: %w", err)
	}

	description := fmt.Sprintf("purchase of %s (%s)", pkg.Name, event.PaymentRef)
	if _, err := uc.settlementRepo.ApplyBonusPurchase(ctx, event, pkg.Bonos, description); err != nil {
		if !errors.Is(err, entity.ErrDuplicateEvent) {
			uc.logger.Error("Failed to apply purchase settlement %s: %v", event.EventID, err)
		}
		return err
	}

	uc.logger.Info("Purchase settlement %s credited %d bonos to member %s", event.EventID, pkg.Bonos, event.MemberID)
	return nil
}
