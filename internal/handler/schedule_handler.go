package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"entrydesk/internal/domain"
	"entrydesk/internal/middleware"
	"entrydesk/internal/service"
)

// ScheduleRequest is the payload for creating or updating a report schedule.
type ScheduleRequest struct {
	Name         string   `json:"name" binding:"required"`
	CustomerName string   `json:"customer_name" binding:"required"`
	Frequency    string   `json:"frequency" binding:"required"`
	LookbackDays int      `json:"lookback_days"`
	Recipients   []string `json:"recipients" binding:"required"`
	IsActive     *bool    `json:"is_active"`
}

// ScheduleHandler handles report schedule endpoints.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// Create handles POST /api/v1/schedules.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sched := req.toDomain()
	sched.CreatedBy = middleware.GetClientID(c)

	if err := h.scheduleService.Create(c.Request.Context(), sched); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sched)
}

// List handles GET /api/v1/schedules.
func (h *ScheduleHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	schedules, total, err := h.scheduleService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, schedules, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/schedules/:id.
func (h *ScheduleHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid schedule ID")
		return
	}

	sched, err := h.scheduleService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sched)
}

// Update handles PUT /api/v1/schedules/:id.
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid schedule ID")
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	existing, err := h.scheduleService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	sched := req.toDomain()
	sched.ID = id
	sched.CreatedBy = existing.CreatedBy
	sched.NextRunAt = existing.NextRunAt

	if err := h.scheduleService.Update(c.Request.Context(), sched); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sched)
}

// Delete handles DELETE /api/v1/schedules/:id.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid schedule ID")
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// ListRuns handles GET /api/v1/schedules/:id/runs.
func (h *ScheduleHandler) ListRuns(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid schedule ID")
		return
	}
	offset, limit := pagination(c)

	runs, total, err := h.scheduleService.ListRuns(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

func (r *ScheduleRequest) toDomain() *domain.ReportSchedule {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.ReportSchedule{
		Name:         r.Name,
		CustomerName: r.CustomerName,
		Frequency:    domain.ScheduleFrequency(r.Frequency),
		LookbackDays: r.LookbackDays,
		Recipients:   strings.Join(r.Recipients, ","),
		IsActive:     active,
	}
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
