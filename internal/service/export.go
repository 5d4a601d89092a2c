package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
)

// ErrInvalidExportFormat is returned for formats other than json and csv.
var ErrInvalidExportFormat = errors.New("export format must be json or csv")

// Export formats.
const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

// ExportRecord is a flattened lead as written to exports.
type ExportRecord struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	EmailStatus        string  `json:"email_status"`
	Score              int     `json:"score"`
	Position           string  `json:"position"`
	Phone              string  `json:"phone"`
	LinkedInProfile    string  `json:"linkedin_profile"`
	Priority           string  `json:"priority"`
	LastContactDate    *string `json:"last_contact_date"`
	NextFollowUp       *string `json:"next_follow_up"`
	FollowUpNotes      string  `json:"follow_up_notes"`
	FollowUpType       string  `json:"follow_up_type"`
	CompanyName        string  `json:"company_name"`
	Industry           string  `json:"industry"`
	CompanySize        string  `json:"company_size"`
	CompanyDescription string  `json:"company_description"`
	CompanySummary     string  `json:"company_summary"`
	CompanyWebsite     string  `json:"company_website"`
	CompanyDomain      string  `json:"company_domain"`
	CompanyCountry     string  `json:"company_country"`
	OwnerName          string  `json:"owner_name"`
	OwnerEmail         string  `json:"owner_email"`
	OwnerPhone         string  `json:"owner_phone"`
	OwnerLinkedIn      string  `json:"owner_linkedin"`
	LinkedIn           *string `json:"linkedin"`
	Twitter            *string `json:"twitter"`
	Instagram          *string `json:"instagram"`
	Facebook           *string `json:"facebook"`
}

var exportHeader = []string{
	"id", "name", "email", "email_status", "score", "position", "phone", "linkedin_profile", "priority",
	"last_contact_date", "next_follow_up", "follow_up_notes", "follow_up_type", "company_name", "industry",
	"company_size", "company_description", "company_summary", "company_website", "company_domain",
	"company_country", "owner_name", "owner_email", "owner_phone", "owner_linkedin",
	"linkedin", "twitter", "instagram", "facebook",
}

// ParseExportFormat normalises a requested format; empty means csv.
func ParseExportFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportJSON:
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}
}

// Export returns the selected leads, or every lead when ids is empty.
func (s *LeadService) Export(ctx context.Context, req dto.ExportRequest) ([]ExportRecord, error) {
	if _, err := ParseExportFormat(req.Format); err != nil {
		return nil, err
	}
	leads, err := s.leads.List(ctx, dto.LeadFilter{IDs: req.LeadIDs})
	if err != nil {
		return nil, err
	}
	records := make([]ExportRecord, 0, len(leads))
	for _, l := range leads {
		records = append(records, exportRecord(l))
	}
	return records, nil
}

func exportRecord(d entity.LeadDetail) ExportRecord {
	c := d.Company
	return ExportRecord{
		ID:                 d.ID.String(),
		Name:               d.Name,
		Email:              d.Email,
		EmailStatus:        d.EmailStatus,
		Score:              d.Score,
		Position:           d.Position,
		Phone:              d.Phone,
		LinkedInProfile:    d.LinkedInProfile,
		Priority:           d.Priority,
		LastContactDate:    isoTime(d.LastContactDate),
		NextFollowUp:       isoTime(d.NextFollowUp),
		FollowUpNotes:      d.FollowUpNotes,
		FollowUpType:       d.FollowUpType,
		CompanyName:        c.Name,
		Industry:           c.Industry,
		CompanySize:        c.Size,
		CompanyDescription: c.Description,
		CompanySummary:     c.Summary,
		CompanyWebsite:     c.Website,
		CompanyDomain:      c.Domain,
		CompanyCountry:     c.Country,
		OwnerName:          c.OwnerName,
		OwnerEmail:         c.OwnerEmail,
		OwnerPhone:         c.OwnerPhone,
		OwnerLinkedIn:      c.OwnerLinkedIn,
		LinkedIn:           d.SocialMedia.LinkedIn,
		Twitter:            d.SocialMedia.Twitter,
		Instagram:          d.SocialMedia.Instagram,
		Facebook:           d.SocialMedia.Facebook,
	}
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []ExportRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID, r.Name, r.Email, r.EmailStatus, strconv.Itoa(r.Score), r.Position, r.Phone, r.LinkedInProfile,
			r.Priority, deref(r.LastContactDate), deref(r.NextFollowUp), r.FollowUpNotes, r.FollowUpType,
			r.CompanyName, r.Industry, r.CompanySize, r.CompanyDescription, r.CompanySummary, r.CompanyWebsite,
			r.CompanyDomain, r.CompanyCountry, r.OwnerName, r.OwnerEmail, r.OwnerPhone, r.OwnerLinkedIn,
			deref(r.LinkedIn), deref(r.Twitter), deref(r.Instagram), deref(r.Facebook),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
