package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/pkg/logger"
	"clubhub/pkg/s3"
)

type CommissionUseCase interface {
	List(ctx context.Context, filter persistent.CommissionListFilter) ([]*entity.CommissionRecord, error)
	UpdateStatus(ctx context.Context, id string, status entity.CommissionStatus) (*entity.CommissionRecord, error)
	// ExportCSV writes all commission records in [from,to) to S3 and returns
	// the object URL.
	ExportCSV(ctx context.Context, from, to time.Time) (string, error)
}

type commissionUseCase struct {
	commissionRepo persistent.CommissionRepository
	s3Client       *s3.Client
	logger         *logger.Logger
}

func NewCommissionUseCase(commissionRepo persistent.CommissionRepository, s3Client *s3.Client, logger *logger.Logger) CommissionUseCase {
	return &commissionUseCase{
		commissionRepo: commissionRepo,
		s3Client:       s3Client,
		logger:         logger,
	}
}

func (uc *commissionUseCase) List(ctx context.Context, filter persistent.CommissionListFilter) ([]*entity.CommissionRecord, error) {
	records, err := uc.commissionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list commissions: %v", err)
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	return records, nil
}

func (uc *commissionUseCase) UpdateStatus(ctx context.Context, id string, status entity.CommissionStatus) (*entity.CommissionRecord, error) {
	switch status {
	case entity.CommissionStatusPending, entity.CommissionStatusApproved, entity.CommissionStatusPaid:
	default:
		return nil, fmt.Errorf("unknown commission status %q: %w", status, entity.ErrInvalidState)
	}

	record, err := uc.commissionRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("Failed to update commission %s: %v", id, err)
		return nil, fmt.Errorf("failed to update commission: %w", err)
	}
	return record, nil
}

func (uc *commissionUseCase) ExportCSV(ctx context.Context, from, to time.Time) (string, error) {
	if uc.s3Client == nil {
		return "", fmt.Errorf("report storage is not configured")
	}

	records, err := uc.commissionRepo.List(ctx, persistent.CommissionListFilter{From: from, To: to})
	if err != nil {
		uc.logger.Error("Failed to load commissions for export: %v", err)
		return "", fmt.Errorf("failed to load commissions: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "professional_id", "booking_id", "gross_amount", "rate", "amount", "status", "created_at"})
	for _, r := range records {
		w.Write([]string{
			r.ID,
			r.ProfessionalID,
			r.BookingID,
			strconv.Itoa(r.GrossAmount),
			strconv.FormatFloat(r.Rate, 'f', 4, 64),
			strconv.Itoa(r.Amount),
			string(r.Status),
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to build report: %w", err)
	}

	key := fmt.Sprintf("commissions/%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	url, err := uc.s3Client.UploadReport(key, buf.Bytes(), "text/csv")
	if err != nil {
		uc.logger.Error("Failed to upload commission report: %v", err)
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	uc.logger.Info("Exported %d commission records to %s", len(records), url)
	return url, nil
}
