package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"entrydesk/internal/config"
	"entrydesk/internal/domain"
	"entrydesk/internal/landedcost"
	"entrydesk/internal/port"
	"entrydesk/internal/xlsxreport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService produces landed-cost reports and delivers them.
type ReportService interface {
	GenerateByEntryNumbers(ctx context.Context, entryNumbers []string) (*domain.LandedCostReport, error)
	GenerateForCustomer(ctx context.Context, customerName string, from, to time.Time) (*domain.LandedCostReport, error)
	RenderXLSX(report *domain.LandedCostReport) ([]byte, error)
	RenderAndDeliver(ctx context.Context, report *domain.LandedCostReport, recipients []string, reportName string) (*domain.ReportDelivery, error)
	FetchArchive(ctx context.Context, key string) ([]byte, error)
	DeleteArchive(ctx context.Context, key string) error
}

type reportService struct {
	entryRepo port.EntryRepository
	storage   port.ObjectStorage
	mailer    port.ReportMailer
	s3cfg     *config.S3Config
}

// NewReportService creates a new ReportService.
func NewReportService(entryRepo port.EntryRepository, storage port.ObjectStorage, mailer port.ReportMailer, s3cfg *config.S3Config) ReportService {
	return &reportService{
		entryRepo: entryRepo,
		storage:   storage,
		mailer:    mailer,
		s3cfg:     s3cfg,
	}
}

func (s *reportService) GenerateByEntryNumbers(ctx context.Context, entryNumbers []string) (*domain.LandedCostReport, error) {
	entries, err := s.entryRepo.FindByEntryNumbers(ctx, entryNumbers)
	if err != nil {
		return nil, fmt.Errorf("reportService.GenerateByEntryNumbers: %w", err)
	}
	// An empty selection is a valid, empty report.
	return landedcost.Generate(entries), nil
}

func (s *reportService) GenerateForCustomer(ctx context.Context, customerName string, from, to time.Time) (*domain.LandedCostReport, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}
	entries, err := s.entryRepo.FindByCustomerReleasedBetween(ctx, customerName, from, to)
	if err != nil {
		return nil, fmt.Errorf("reportService.GenerateForCustomer: %w", err)
	}
	report := landedcost.Generate(entries)
	if report.CustomerName == "" {
		report.CustomerName = customerName
	}
	return report, nil
}

func (s *reportService) RenderXLSX(report *domain.LandedCostReport) ([]byte, error) {
	w, err := xlsxreport.NewWriter()
	if err != nil {
		return nil, fmt.Errorf("reportService.RenderXLSX: %w", err)
	}
	defer w.Close()

	if err := w.WriteReport(report); err != nil {
		return nil, fmt.Errorf("reportService.RenderXLSX: %w", err)
	}
	var buf bytes.Buffer
	if err := w.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("reportService.RenderXLSX: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) RenderAndDeliver(ctx context.Context, report *domain.LandedCostReport, recipients []string, reportName string) (*domain.ReportDelivery, error) {
	data, err := s.RenderXLSX(report)
	if err != nil {
		return nil, err
	}

	key := objectKey(report.CustomerName, reportName, time.Now().UTC())
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: xlsxContentType,
	}); err != nil {
		return nil, fmt.Errorf("reportService.RenderAndDeliver upload: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, key, s.s3cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("reportService.RenderAndDeliver presign: %w", err)
	}

	if len(recipients) > 0 {
		if err := s.mailer.SendReportEmail(ctx, recipients, report.CustomerName, reportName, url); err != nil {
			return nil, fmt.Errorf("reportService.RenderAndDeliver email: %w", err)
		}
	}

	return &domain.ReportDelivery{
		ObjectKey:   key,
		DownloadURL: url,
		Recipients:  recipients,
		DeliveredAt: time.Now().UTC(),
	}, nil
}

// FetchArchive reads a previously archived workbook back from storage.
func (s *reportService) FetchArchive(ctx context.Context, key string) ([]byte, error) {
	data, err := s.storage.Download(ctx, s.s3cfg.Bucket, key)
	if err != nil {
		return nil, fmt.Errorf("reportService.FetchArchive: %w", err)
	}
	return data, nil
}

// DeleteArchive removes an archived workbook, typically after its retention
// window has passed.
func (s *reportService) DeleteArchive(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, s.s3cfg.Bucket, key); err != nil {
		return fmt.Errorf("reportService.DeleteArchive: %w", err)
	}
	return nil
}

// objectKey builds the archive key for a rendered workbook. Customer names
// carry spaces and punctuation; they are slugged for the key only.
func objectKey(customerName, reportName string, now time.Time) string {
	return fmt.Sprintf("reports/%s/%s-%s.xlsx",
		slug(customerName), slug(reportName), now.Format("20060102T150405Z"))
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}
