package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
)

var (
	// ErrLeadNotFound is returned when no lead matches the lookup.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrDuplicateEmail is returned when another lead already uses the email.
	ErrDuplicateEmail = errors.New("lead email already exists")
)

const leadsEmailConstraint = "leads_email_key"

// LeadsRepository describes persistence operations for leads.
type LeadsRepository interface {
	List(ctx context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.LeadDetail, error)
	Create(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, lead *entity.Lead) error
}

// PGXLeadsRepository implements LeadsRepository with pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository instantiates a leads repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

const leadDetailQuery = `
        SELECT
            l.id, l.company_id, l.name, l.email, l.email_status, l.score, l.phone, l.position,
            l.linkedin_profile, l.last_contact_date, l.next_follow_up, l.follow_up_notes,
            l.follow_up_type, l.priority, l.ai_analysis, l.cold_email_template,
            l.created_at, l.updated_at,` + companyColumns + `,
            s.linkedin, s.twitter, s.instagram, s.facebook
        FROM leads l
        JOIN companies c ON c.id = l.company_id
        LEFT JOIN social_media s ON s.company_id = c.id`

// List returns leads joined with their company, newest first.
func (r *PGXLeadsRepository) List(ctx context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error) {
	query := strings.Builder{}
	query.WriteString(leadDetailQuery)

	var (
		clauses []string
		args    []any
		idx     = 1
	)
	if filter.Industry != "" {
		clauses = append(clauses, fmt.Sprintf("c.industry = $%d", idx))
		args = append(args, filter.Industry)
		idx++
	}
	if filter.EmailStatus != "" {
		clauses = append(clauses, fmt.Sprintf("l.email_status = $%d", idx))
		args = append(args, filter.EmailStatus)
		idx++
	}
	if filter.CompanySize != "" {
		clauses = append(clauses, fmt.Sprintf("c.size = $%d", idx))
		args = append(args, filter.CompanySize)
		idx++
	}
	if len(filter.IDs) > 0 {
		clauses = append(clauses, fmt.Sprintf("l.id = ANY($%d)", idx))
		args = append(args, filter.IDs)
	}
	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY l.created_at DESC")

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.LeadDetail
	for rows.Next() {
		detail, err := scanLeadDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		leads = append(leads, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// Get fetches one lead with its company.
func (r *PGXLeadsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.LeadDetail, error) {
	detail, err := scanLeadDetail(r.pool.QueryRow(ctx, leadDetailQuery+" WHERE l.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return detail, nil
}

func scanLeadDetail(row rowScanner) (*entity.LeadDetail, error) {
	var (
		d                                      entity.LeadDetail
		lastContact, nextFollowUp              sql.NullTime
		linkedin, twitter, instagram, facebook sql.NullString
	)
	l := &d.Lead
	dest := []any{
		&l.ID, &l.CompanyID, &l.Name, &l.Email, &l.EmailStatus, &l.Score, &l.Phone, &l.Position,
		&l.LinkedInProfile, &lastContact, &nextFollowUp, &l.FollowUpNotes,
		&l.FollowUpType, &l.Priority, &l.AIAnalysis, &l.ColdEmailTemplate,
		&l.CreatedAt, &l.UpdatedAt,
	}
	dest = append(dest, companyFields(&d.Company)...)
	dest = append(dest, &linkedin, &twitter, &instagram, &facebook)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	l.LastContactDate = nullTimeToPtr(lastContact)
	l.NextFollowUp = nullTimeToPtr(nextFollowUp)
	d.SocialMedia = entity.SocialMedia{
		CompanyID: d.Company.ID,
		LinkedIn:  nullStringToPtr(linkedin),
		Twitter:   nullStringToPtr(twitter),
		Instagram: nullStringToPtr(instagram),
		Facebook:  nullStringToPtr(facebook),
	}
	return &d, nil
}

// Create inserts a new lead and fills its generated fields.
func (r *PGXLeadsRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO leads (
            company_id, name, email, email_status, score, phone, position, linkedin_profile,
            last_contact_date, next_follow_up, follow_up_notes, follow_up_type, priority,
            ai_analysis, cold_email_template
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`, leadArgs(lead)...)
	if err := row.Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
		if isUniqueViolation(err, leadsEmailConstraint) {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, lead.Email)
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Update writes every mutable column of an existing lead.
func (r *PGXLeadsRepository) Update(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}
	args := append(leadArgs(lead), lead.ID)
	row := r.pool.QueryRow(ctx, `
        UPDATE leads SET
            company_id = $1, name = $2, email = $3, email_status = $4, score = $5, phone = $6,
            position = $7, linkedin_profile = $8, last_contact_date = $9, next_follow_up = $10,
            follow_up_notes = $11, follow_up_type = $12, priority = $13, ai_analysis = $14,
            cold_email_template = $15, updated_at = NOW()
        WHERE id = $16
        RETURNING updated_at`, args...)
	if err := row.Scan(&lead.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrLeadNotFound
		}
		if isUniqueViolation(err, leadsEmailConstraint) {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, lead.Email)
		}
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

func leadArgs(l *entity.Lead) []any {
	return []any{
		l.CompanyID, l.Name, l.Email, l.EmailStatus, l.Score, l.Phone, l.Position, l.LinkedInProfile,
		timeOrNil(l.LastContactDate), timeOrNil(l.NextFollowUp), l.FollowUpNotes, l.FollowUpType, l.Priority,
		l.AIAnalysis, l.ColdEmailTemplate,
	}
}
