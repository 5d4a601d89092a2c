package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-enricher/internal/repository"
	"github.com/octobees/leads-enricher/internal/scraper"
	"github.com/octobees/leads-enricher/internal/service"
)

// serviceError maps domain errors onto the response envelope. Anything
// unrecognised becomes a 500 carrying fallback.
func serviceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrLeadNotFound):
		return Error(c, http.StatusNotFound, "lead not found")
	case errors.Is(err, repository.ErrCompanyNotFound):
		return Error(c, http.StatusNotFound, "company not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return Error(c, http.StatusConflict, "a lead with this email already exists")
	case errors.Is(err, service.ErrInvalidExportFormat), errors.Is(err, service.ErrFollowUpDateRequired):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, scraper.ErrNoWebsite), errors.Is(err, scraper.ErrNoContent):
		return Error(c, http.StatusNotFound, scraper.Reason(err))
	default:
		return Error(c, http.StatusInternalServerError, fallback)
	}
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
