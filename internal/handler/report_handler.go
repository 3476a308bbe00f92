package handler

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"entrydesk/internal/domain"
	"entrydesk/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GenerateReportRequest selects the entries for an ad hoc landed-cost report.
// Either entry_numbers or customer_name plus a date range must be provided.
type GenerateReportRequest struct {
	EntryNumbers []string `json:"entry_numbers"`
	CustomerName string   `json:"customer_name"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Recipients   []string `json:"recipients"`
	ReportName   string   `json:"report_name"`
}

// ReportHandler handles landed-cost report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate handles POST /api/v1/reports/landed-cost.
// With ?deliver=true the workbook is archived and mailed; otherwise the
// computed report is returned as JSON.
func (h *ReportHandler) Generate(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.generate(c, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("deliver") != "true" {
		RespondOK(c, report)
		return
	}

	name := req.ReportName
	if name == "" {
		name = "Landed Cost"
	}
	delivery, err := h.reportService.RenderAndDeliver(c.Request.Context(), report, req.Recipients, name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, delivery)
}

// Download handles POST /api/v1/reports/landed-cost/download. It streams the
// rendered workbook directly without archiving it.
func (h *ReportHandler) Download(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.generate(c, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := h.reportService.RenderXLSX(report)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("landed-cost-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Archive handles GET /api/v1/reports/archive/*key. It streams a previously
// archived workbook back to the caller.
func (h *ReportHandler) Archive(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "archive key is required")
		return
	}

	data, err := h.reportService.FetchArchive(c.Request.Context(), key)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, path.Base(key)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// DeleteArchive handles DELETE /api/v1/reports/archive/*key. Retention cleanup
// removes archived workbooks that are past their retention window.
func (h *ReportHandler) DeleteArchive(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "archive key is required")
		return
	}

	if err := h.reportService.DeleteArchive(c.Request.Context(), key); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": key})
}

func (h *ReportHandler) generate(c *gin.Context, req *GenerateReportRequest) (*domain.LandedCostReport, error) {
	ctx := c.Request.Context()

	if len(req.EntryNumbers) > 0 {
		return h.reportService.GenerateByEntryNumbers(ctx, req.EntryNumbers)
	}

	if req.CustomerName == "" || req.From == "" || req.To == "" {
		return nil, domain.ErrNoSelection
	}
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, domain.ErrInvalidDateRange
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, domain.ErrInvalidDateRange
	}
	// Make the range inclusive of the to date.
	to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return h.reportService.GenerateForCustomer(ctx, req.CustomerName, from, to)
}
