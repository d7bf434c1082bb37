package persistent

import (
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/model"
)

// optionalID maps an absent reference to NULL so uuid columns never see "".
func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func fromOptionalID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func ToBookingEntity(m *model.BookingModel) *entity.Booking {
	if m == nil {
		return nil
	}

	return &entity.Booking{
		ID:             m.ID,
		Number:         m.Number,
		MemberID:       m.MemberID,
		ServiceID:      m.ServiceID,
		ZoneID:         m.ZoneID,
		LocationID:     fromOptionalID(m.LocationID),
		ProfessionalID: fromOptionalID(m.ProfessionalID),
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		Status:         entity.BookingStatus(m.Status),
		PaymentMethod:  entity.PaymentMethod(m.PaymentMethod),
		AmountBonos:    m.AmountBonos,
		AmountFiat:     m.AmountFiat,
		TransactionID:  fromOptionalID(m.TransactionID),
		Notes:          m.Notes,
		CancelReason:   m.CancelReason,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToBookingModel(e *entity.Booking) *model.BookingModel {
	if e == nil {
		return nil
	}

	return &model.BookingModel{
		ID:             e.ID,
		Number:         e.Number,
		MemberID:       e.MemberID,
		ServiceID:      e.ServiceID,
		ZoneID:         e.ZoneID,
		LocationID:     optionalID(e.LocationID),
		ProfessionalID: optionalID(e.ProfessionalID),
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		Status:         string(e.Status),
		PaymentMethod:  string(e.PaymentMethod),
		AmountBonos:    e.AmountBonos,
		AmountFiat:     e.AmountFiat,
		TransactionID:  optionalID(e.TransactionID),
		Notes:          e.Notes,
		CancelReason:   e.CancelReason,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToWalletEntity(m *model.WalletModel) *entity.Wallet {
	if m == nil {
		return nil
	}

	return &entity.Wallet{
		ID:                m.ID,
		MemberID:          m.MemberID,
		Balance:           m.Balance,
		LifetimePurchased: m.LifetimePurchased,
		LifetimeSpent:     m.LifetimeSpent,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func ToTransactionEntity(m *model.WalletTransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:            m.ID,
		WalletID:      m.WalletID,
		Type:          entity.TransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ReferenceType: entity.ReferenceType(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

func ToWindowEntity(m *model.AvailabilityWindowModel) *entity.AvailabilityWindow {
	if m == nil {
		return nil
	}

	return &entity.AvailabilityWindow{
		ID:           m.ID,
		ResourceType: entity.ResourceType(m.ResourceType),
		ResourceID:   m.ResourceID,
		Weekday:      time.Weekday(m.Weekday),
		OpenMinute:   m.OpenMinute,
		CloseMinute:  m.CloseMinute,
	}
}

func ToBlockEntity(m *model.BlockModel) *entity.Block {
	if m == nil {
		return nil
	}

	return &entity.Block{
		ID:           m.ID,
		ResourceType: entity.ResourceType(m.ResourceType),
		ResourceID:   m.ResourceID,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Reason:       m.Reason,
	}
}

func ToCommissionEntity(m *model.CommissionRecordModel) *entity.CommissionRecord {
	if m == nil {
		return nil
	}

	return &entity.CommissionRecord{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		BookingID:      m.BookingID,
		GrossAmount:    m.GrossAmount,
		Rate:           m.Rate,
		Amount:         m.Amount,
		Status:         entity.CommissionStatus(m.Status),
		CreatedAt:      m.CreatedAt,
	}
}

func ToProfessionalEntity(m *model.ProfessionalModel) *entity.Professional {
	if m == nil {
		return nil
	}

	return &entity.Professional{
		ID:          m.ID,
		Name:        m.Name,
		DefaultRate: m.DefaultRate,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func ToOverrideEntity(m *model.ServiceRateOverrideModel) *entity.ServiceRateOverride {
	if m == nil {
		return nil
	}

	return &entity.ServiceRateOverride{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		ServiceID:      m.ServiceID,
		Rate:           m.Rate,
	}
}
