package noop

import (
	"context"
	"log"
	"strings"

	"entrydesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op ReportMailer that logs deliveries to stdout.
func NewNoopSender() port.ReportMailer {
	return &noopSender{}
}

func (s *noopSender) SendReportEmail(_ context.Context, to []string, customerName, reportName, downloadURL string) error {
	log.Printf("[NOOP EMAIL] %s report for %s to %s: %s",
		reportName, customerName, strings.Join(to, ", "), downloadURL)
	return nil
}
