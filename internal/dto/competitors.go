package dto

import "github.com/google/uuid"

// CreateCompetitorRequest records a competitor against a company.
type CreateCompetitorRequest struct {
	CompanyID      uuid.UUID `json:"company_id" validate:"required"`
	CompetitorName string    `json:"competitor_name" validate:"required,max=100"`
}
