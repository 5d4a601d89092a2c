package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
	"github.com/octobees/leads-enricher/internal/service"
)

// LeadManager is the lead workflow used by LeadsHandler.
type LeadManager interface {
	List(ctx context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.LeadDetail, error)
	Create(ctx context.Context, req dto.CreateLeadRequest) (*entity.Lead, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLeadRequest) (*entity.LeadDetail, error)
	Export(ctx context.Context, req dto.ExportRequest) ([]service.ExportRecord, error)
	EmailTemplate(ctx context.Context, id uuid.UUID) (string, error)
	LinkedInConnect(ctx context.Context, id uuid.UUID) (dto.LinkedInConnectResponse, error)
	ScheduleFollowUp(ctx context.Context, id uuid.UUID, req dto.FollowUpRequest) (*entity.Lead, error)
	Analyze(ctx context.Context, id uuid.UUID) (dto.AnalysisResponse, error)
}

// LeadsHandler exposes lead endpoints.
type LeadsHandler struct {
	service LeadManager
	now     func() time.Time
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service LeadManager) *LeadsHandler {
	return &LeadsHandler{service: service, now: time.Now}
}

// List handles GET /leads requests.
func (h *LeadsHandler) List(c echo.Context) error {
	filter := dto.LeadFilter{
		Industry:    strings.TrimSpace(c.QueryParam("industry")),
		EmailStatus: strings.TrimSpace(c.QueryParam("email_status")),
		CompanySize: strings.TrimSpace(c.QueryParam("company_size")),
	}
	leads, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, err, "failed to list leads")
	}
	if leads == nil {
		leads = []entity.LeadDetail{}
	}
	return Success(c, http.StatusOK, "leads retrieved", leads)
}

// Get handles GET /leads/:id requests.
func (h *LeadsHandler) Get(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}
	lead, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to load lead")
	}
	return Success(c, http.StatusOK, "lead retrieved", lead)
}

// Create handles POST /leads requests.
func (h *LeadsHandler) Create(c echo.Context) error {
	var req dto.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	lead, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "failed to create lead")
	}
	return Success(c, http.StatusCreated, "Lead added successfully", dto.LeadCreatedResponse{ID: lead.ID, Score: lead.Score})
}

// Update handles PUT /leads/:id requests.
func (h *LeadsHandler) Update(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}
	var req dto.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	lead, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err, "failed to update lead")
	}
	return Success(c, http.StatusOK, "Lead updated successfully", lead)
}

// Export handles POST /leads/export requests. CSV is sent as an attachment,
// JSON inside the usual envelope.
func (h *LeadsHandler) Export(c echo.Context) error {
	var req dto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		return serviceError(c, err, "")
	}
	req.Format = format

	records, err := h.service.Export(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "failed to export leads")
	}

	if format == service.ExportJSON {
		return Success(c, http.StatusOK, "leads exported", records)
	}

	filename := fmt.Sprintf("leads_export_%s.csv", h.now().UTC().Format("20060102_150405"))
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	res.WriteHeader(http.StatusOK)
	return service.WriteCSV(res, records)
}

// EmailTemplate handles GET /leads/:id/email-template requests.
func (h *LeadsHandler) EmailTemplate(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}
	template, err := h.service.EmailTemplate(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to generate email template")
	}
	return Success(c, http.StatusOK, "email template generated", dto.EmailTemplateResponse{EmailTemplate: template})
}

// LinkedInConnect handles POST /leads/:id/linkedin-connect requests.
func (h *LeadsHandler) LinkedInConnect(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}
	resp, err := h.service.LinkedInConnect(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to build connection message")
	}
	return Success(c, http.StatusOK, "connection message generated", resp)
}

// FollowUp handles POST /leads/:id/follow-up requests.
func (h *LeadsHandler) FollowUp(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}
	var req dto.FollowUpRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	lead, err := h.service.ScheduleFollowUp(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err, "failed to schedule follow-up")
	}
	return Success(c, http.StatusOK, "Follow-up scheduled successfully", lead)
}

// Analyze handles GET /leads/:id/analyze requests.
func (h *LeadsHandler) Analyze(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}
	resp, err := h.service.Analyze(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to analyze lead")
	}
	return Success(c, http.StatusOK, "lead analyzed", resp)
}
