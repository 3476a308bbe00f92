package port

import "context"

// ReportMailer delivers finished report notifications to recipients.
type ReportMailer interface {
	SendReportEmail(ctx context.Context, to []string, customerName, reportName, downloadURL string) error
}
