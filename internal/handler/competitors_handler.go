package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
)

// CompetitorTracker stores competitor analyses.
type CompetitorTracker interface {
	List(ctx context.Context, companyID uuid.UUID) ([]entity.Competitor, error)
	Add(ctx context.Context, req dto.CreateCompetitorRequest) (*entity.Competitor, error)
}

// CompetitorsHandler exposes competitor endpoints.
type CompetitorsHandler struct {
	service CompetitorTracker
}

// NewCompetitorsHandler creates a new handler instance.
func NewCompetitorsHandler(service CompetitorTracker) *CompetitorsHandler {
	return &CompetitorsHandler{service: service}
}

// List handles GET /competitors/:company_id requests.
func (h *CompetitorsHandler) List(c echo.Context) error {
	companyID, ok := parseUUIDParam(c, "company_id")
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid company_id")
	}
	competitors, err := h.service.List(c.Request().Context(), companyID)
	if err != nil {
		return serviceError(c, err, "failed to list competitors")
	}
	if competitors == nil {
		competitors = []entity.Competitor{}
	}
	return Success(c, http.StatusOK, "competitors retrieved", competitors)
}

// Create handles POST /competitors requests.
func (h *CompetitorsHandler) Create(c echo.Context) error {
	var req dto.CreateCompetitorRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	competitor, err := h.service.Add(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "failed to add competitor")
	}
	return Success(c, http.StatusCreated, "Competitor added successfully", competitor)
}
