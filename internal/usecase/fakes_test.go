package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clubhub/internal/clients"
	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"

	"github.com/google/uuid"
)

// In-memory doubles for the persistence layer. They mirror the repository
// semantics closely enough to exercise the use cases without a database: the
// booking fake debits the wallet fake inside CreateWithCharge the same way
// the real repositories share one transaction, and both fakes serialize
// their mutations under a mutex the way the row and advisory locks do.

type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*entity.Wallet
	txs     map[string][]*entity.Transaction
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets: make(map[string]*entity.Wallet),
		txs:     make(map[string][]*entity.Transaction),
	}
}

func (f *fakeWalletRepo) EnsureWallet(_ context.Context, memberID string) (*entity.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wallets[memberID]; ok {
		return w, nil
	}
	w := &entity.Wallet{ID: uuid.New().String(), MemberID: memberID}
	f.wallets[memberID] = w
	return w, nil
}

func (f *fakeWalletRepo) GetByMember(_ context.Context, memberID string) (*entity.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[memberID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return w, nil
}

func (f *fakeWalletRepo) record(w *entity.Wallet, txType entity.TransactionType, amount int, refType entity.ReferenceType, refID, description string) *entity.Transaction {
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		WalletID:      w.ID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: w.Balance,
		BalanceAfter:  w.Balance + amount,
		ReferenceType: refType,
		ReferenceID:   refID,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
	w.Balance += amount
	f.txs[w.MemberID] = append(f.txs[w.MemberID], tx)
	return tx
}

func (f *fakeWalletRepo) debit(memberID string, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[memberID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if w.Balance < amount {
		return nil, fmt.Errorf("balance %d short of %d: %w", w.Balance, amount, entity.ErrInsufficientBalance)
	}
	tx := f.record(w, entity.TransactionTypeSpend, -amount, refType, refID, description)
	w.LifetimeSpent += amount
	return tx, nil
}

func (f *fakeWalletRepo) Debit(_ context.Context, memberID string, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error) {
	return f.debit(memberID, amount, refType, refID, description)
}

func (f *fakeWalletRepo) Credit(_ context.Context, memberID string, txType entity.TransactionType, amount int, refType entity.ReferenceType, refID, description string) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[memberID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	tx := f.record(w, txType, amount, refType, refID, description)
	switch txType {
	case entity.TransactionTypeRefund:
		w.LifetimeSpent -= amount
	default:
		w.LifetimePurchased += amount
	}
	return tx, nil
}

func (f *fakeWalletRepo) Refund(ctx context.Context, memberID string, amount int, bookingID string) (*entity.Transaction, error) {
	return f.Credit(ctx, memberID, entity.TransactionTypeRefund, amount, entity.ReferenceTypeBooking, bookingID, "refund")
}

func (f *fakeWalletRepo) Transactions(_ context.Context, memberID string, limit, offset int) ([]*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wallets[memberID]; !ok {
		return nil, entity.ErrNotFound
	}
	txs := f.txs[memberID]
	if offset > len(txs) {
		offset = len(txs)
	}
	txs = txs[offset:]
	if limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}
	return txs, nil
}

var _ persistent.WalletRepository = (*fakeWalletRepo)(nil)

type fakeBookingRepo struct {
	mu          sync.Mutex
	bookings    map[string]*entity.Booking
	commissions map[string]*entity.CommissionRecord
	wallets     *fakeWalletRepo
	failCreates int
}

func newFakeBookingRepo(wallets *fakeWalletRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:    make(map[string]*entity.Booking),
		commissions: make(map[string]*entity.CommissionRecord),
		wallets:     wallets,
	}
}

func (f *fakeBookingRepo) overlapping(match func(*entity.Booking) bool, start, end time.Time) bool {
	for _, b := range f.bookings {
		if b.Holds() && match(b) && entity.Overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) CreateWithCharge(_ context.Context, b *entity.Booking) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreates > 0 {
		f.failCreates--
		return nil, fmt.Errorf("connection reset")
	}
	if _, exists := f.bookings[b.ID]; exists {
		return nil, fmt.Errorf("duplicate booking id")
	}
	if f.overlapping(func(other *entity.Booking) bool { return other.ZoneID == b.ZoneID }, b.StartTime, b.EndTime) {
		return nil, fmt.Errorf("%s: %w", entity.ReasonDoubleBooked, entity.ErrResourceUnavailable)
	}
	if b.ProfessionalID != "" {
		busy := f.overlapping(func(other *entity.Booking) bool { return other.ProfessionalID == b.ProfessionalID }, b.StartTime, b.EndTime)
		if busy {
			return nil, fmt.Errorf("%s: %w", entity.ReasonProfessionalBusy, entity.ErrResourceUnavailable)
		}
	}

	stored := *b
	if b.Charged() {
		tx, err := f.wallets.debit(b.MemberID, b.AmountBonos, entity.ReferenceTypeBooking, b.ID, "booking "+b.Number)
		if err != nil {
			return nil, err
		}
		stored.TransactionID = tx.ID
	}

	f.bookings[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id, actor, reason string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if !entity.CanTransition(b.Status, entity.BookingStatusCancelled) {
		return nil, fmt.Errorf("cannot cancel booking in status %s: %w", b.Status, entity.ErrInvalidState)
	}
	if b.Charged() {
		if _, err := f.wallets.Refund(ctx, b.MemberID, b.AmountBonos, b.ID); err != nil {
			return nil, err
		}
	}
	b.Status = entity.BookingStatusCancelled
	b.CancelReason = reason
	if b.CancelReason == "" {
		b.CancelReason = "cancelled by " + actor
	}
	result := *b
	return &result, nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, id string, rate float64) (*entity.Booking, *entity.CommissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil, entity.ErrNotFound
	}
	if b.Status == entity.BookingStatusCompleted {
		result := *b
		return &result, f.commissions[id], nil
	}
	if !entity.CanTransition(b.Status, entity.BookingStatusCompleted) {
		return nil, nil, fmt.Errorf("cannot complete booking in status %s: %w", b.Status, entity.ErrInvalidState)
	}

	gross := b.AmountBonos
	if b.PaymentMethod == entity.PaymentMethodDirect {
		gross = b.AmountFiat
	}
	if b.ProfessionalID != "" && gross > 0 {
		if _, exists := f.commissions[id]; !exists {
			f.commissions[id] = &entity.CommissionRecord{
				ID:             uuid.New().String(),
				ProfessionalID: b.ProfessionalID,
				BookingID:      id,
				GrossAmount:    gross,
				Rate:           rate,
				Amount:         entity.CommissionAmount(gross, rate),
				Status:         entity.CommissionStatusPending,
			}
		}
	}

	b.Status = entity.BookingStatusCompleted
	result := *b
	return &result, f.commissions[id], nil
}

func (f *fakeBookingRepo) ConfirmPayment(_ context.Context, id string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	if b.Status == entity.BookingStatusConfirmed {
		result := *b
		return &result, nil
	}
	if !entity.CanTransition(b.Status, entity.BookingStatusConfirmed) {
		return nil, fmt.Errorf("cannot confirm booking in status %s: %w", b.Status, entity.ErrInvalidState)
	}
	b.Status = entity.BookingStatusConfirmed
	result := *b
	return &result, nil
}

func (f *fakeBookingRepo) ByID(_ context.Context, id string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	result := *b
	return &result, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter persistent.BookingListFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if filter.MemberID != "" && b.MemberID != filter.MemberID {
			continue
		}
		if filter.ProfessionalID != "" && b.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && !b.EndTime.After(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !b.StartTime.Before(filter.To) {
			continue
		}
		result := *b
		out = append(out, &result)
	}
	return out, nil
}

func (f *fakeBookingRepo) HasZoneHold(_ context.Context, zoneID string, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlapping(func(b *entity.Booking) bool { return b.ZoneID == zoneID }, start, end), nil
}

func (f *fakeBookingRepo) HasProfessionalHold(_ context.Context, professionalID string, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlapping(func(b *entity.Booking) bool { return b.ProfessionalID == professionalID }, start, end), nil
}

var _ persistent.BookingRepository = (*fakeBookingRepo)(nil)

type fakeCalendarRepo struct {
	windows map[string][]*entity.AvailabilityWindow
	blocks  []*entity.Block
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{windows: make(map[string][]*entity.AvailabilityWindow)}
}

func calKey(resourceType entity.ResourceType, resourceID string) string {
	return string(resourceType) + "/" + resourceID
}

func (f *fakeCalendarRepo) WindowsFor(_ context.Context, resourceType entity.ResourceType, resourceID string) ([]*entity.AvailabilityWindow, error) {
	return f.windows[calKey(resourceType, resourceID)], nil
}

func (f *fakeCalendarRepo) BlocksOverlapping(_ context.Context, resourceType entity.ResourceType, resourceID string, start, end time.Time) ([]*entity.Block, error) {
	var out []*entity.Block
	for _, b := range f.blocks {
		if b.ResourceType == resourceType && b.ResourceID == resourceID &&
			entity.Overlaps(b.StartTime, b.EndTime, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ persistent.CalendarRepository = (*fakeCalendarRepo)(nil)

type fakeProfessionalRepo struct {
	pros      map[string]*entity.Professional
	overrides map[string]*entity.ServiceRateOverride
}

func newFakeProfessionalRepo() *fakeProfessionalRepo {
	return &fakeProfessionalRepo{
		pros:      make(map[string]*entity.Professional),
		overrides: make(map[string]*entity.ServiceRateOverride),
	}
}

func (f *fakeProfessionalRepo) ByID(_ context.Context, id string) (*entity.Professional, error) {
	p, ok := f.pros[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfessionalRepo) RateOverride(_ context.Context, professionalID, serviceID string) (*entity.ServiceRateOverride, error) {
	return f.overrides[professionalID+"/"+serviceID], nil
}

var _ persistent.ProfessionalRepository = (*fakeProfessionalRepo)(nil)

type fakeSettlementRepo struct {
	events  map[string]bool
	wallets *fakeWalletRepo
}

func newFakeSettlementRepo(wallets *fakeWalletRepo) *fakeSettlementRepo {
	return &fakeSettlementRepo{events: make(map[string]bool), wallets: wallets}
}

func (f *fakeSettlementRepo) ApplyMembership(ctx context.Context, event *entity.SettlementEvent) error {
	if f.events[event.EventID] {
		return entity.ErrDuplicateEvent
	}
	f.events[event.EventID] = true
	_, err := f.wallets.EnsureWallet(ctx, event.MemberID)
	return err
}

func (f *fakeSettlementRepo) ApplyBonusPurchase(ctx context.Context, event *entity.SettlementEvent, amount int, description string) (*entity.Transaction, error) {
	if f.events[event.EventID] {
		return nil, entity.ErrDuplicateEvent
	}
	f.events[event.EventID] = true
	if _, err := f.wallets.EnsureWallet(ctx, event.MemberID); err != nil {
		return nil, err
	}
	return f.wallets.Credit(ctx, event.MemberID, entity.TransactionTypePurchase, amount,
		entity.ReferenceTypePurchase, event.EventID, description)
}

var _ persistent.SettlementRepository = (*fakeSettlementRepo)(nil)

type fakeMembers struct {
	members         map[string]*clients.Member
	activated       []string
	failActivations int
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{members: make(map[string]*clients.Member)}
}

func (f *fakeMembers) GetMember(_ context.Context, id string) (*clients.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembers) ActivateMember(_ context.Context, id string) error {
	if f.failActivations > 0 {
		f.failActivations--
		return fmt.Errorf("member service unavailable")
	}
	f.activated = append(f.activated, id)
	if m, ok := f.members[id]; ok {
		m.Status = clients.MemberStatusActive
	}
	return nil
}

var _ clients.MemberDirectory = (*fakeMembers)(nil)

type fakeCatalog struct {
	services map[string]*clients.Service
	packages map[string]*clients.BonusPackage
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: make(map[string]*clients.Service),
		packages: make(map[string]*clients.BonusPackage),
	}
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (*clients.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return s, nil
}

func (f *fakeCatalog) GetBonusPackage(_ context.Context, id string) (*clients.BonusPackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return p, nil
}

var _ clients.Catalog = (*fakeCatalog)(nil)
