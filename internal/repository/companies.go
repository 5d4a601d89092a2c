package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/leads-enricher/internal/entity"
)

// ErrCompanyNotFound is returned when no company matches the lookup.
var ErrCompanyNotFound = errors.New("company not found")

// CompaniesRepository describes persistence operations for companies and
// their social profiles.
type CompaniesRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindByName(ctx context.Context, name string) (*entity.Company, error)
	Save(ctx context.Context, company *entity.Company, socials *entity.SocialMedia) error
	SocialMedia(ctx context.Context, companyID uuid.UUID) (*entity.SocialMedia, error)
}

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const companyColumns = `
            c.id, c.name, c.industry, c.size, c.description, c.summary, c.website, c.domain,
            c.country, c.revenue, c.linkedin_activity, c.target_audience, c.owner_name,
            c.owner_email, c.owner_email_status, c.owner_phone, c.owner_linkedin,
            c.created_at, c.updated_at`

func companyFields(c *entity.Company) []any {
	return []any{
		&c.ID, &c.Name, &c.Industry, &c.Size, &c.Description, &c.Summary, &c.Website, &c.Domain,
		&c.Country, &c.Revenue, &c.LinkedInActivity, &c.TargetAudience, &c.OwnerName,
		&c.OwnerEmail, &c.OwnerEmailStatus, &c.OwnerPhone, &c.OwnerLinkedIn,
		&c.CreatedAt, &c.UpdatedAt,
	}
}

// Get fetches a company by id.
func (r *PGXCompaniesRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+companyColumns+` FROM companies c WHERE c.id = $1`, id)
	return scanCompany(row, "get company")
}

// FindByName returns the oldest company whose name matches case-insensitively.
func (r *PGXCompaniesRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+companyColumns+`
        FROM companies c
        WHERE LOWER(c.name) = LOWER($1)
        ORDER BY c.created_at ASC
        LIMIT 1`, name)
	return scanCompany(row, "find company by name")
}

func scanCompany(row rowScanner, op string) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(companyFields(&c)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// Save inserts the company when it has no id yet, otherwise updates it.
// When socials is non-nil its links are upserted in the same transaction.
func (r *PGXCompaniesRepository) Save(ctx context.Context, company *entity.Company, socials *entity.SocialMedia) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("start save company tx: %w", err)
	}
	defer tx.Rollback(ctx)

	args := []any{
		company.Name, company.Industry, company.Size, company.Description, company.Summary,
		company.Website, company.Domain, company.Country, company.Revenue, company.LinkedInActivity,
		company.TargetAudience, company.OwnerName, company.OwnerEmail, company.OwnerEmailStatus,
		company.OwnerPhone, company.OwnerLinkedIn,
	}

	if company.ID == uuid.Nil {
		err = tx.QueryRow(ctx, `
        INSERT INTO companies (
            name, industry, size, description, summary, website, domain, country, revenue,
            linkedin_activity, target_audience, owner_name, owner_email, owner_email_status,
            owner_phone, owner_linkedin
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`, args...).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert company: %w", err)
		}
	} else {
		args = append(args, company.ID)
		err = tx.QueryRow(ctx, `
        UPDATE companies SET
            name = $1, industry = $2, size = $3, description = $4, summary = $5, website = $6,
            domain = $7, country = $8, revenue = $9, linkedin_activity = $10, target_audience = $11,
            owner_name = $12, owner_email = $13, owner_email_status = $14, owner_phone = $15,
            owner_linkedin = $16, updated_at = NOW()
        WHERE id = $17
        RETURNING created_at, updated_at`, args...).Scan(&company.CreatedAt, &company.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrCompanyNotFound
			}
			return fmt.Errorf("update company: %w", err)
		}
	}

	if socials != nil {
		socials.CompanyID = company.ID
		_, err = tx.Exec(ctx, `
        INSERT INTO social_media (company_id, linkedin, twitter, instagram, facebook, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (company_id) DO UPDATE SET
            linkedin = EXCLUDED.linkedin,
            twitter = EXCLUDED.twitter,
            instagram = EXCLUDED.instagram,
            facebook = EXCLUDED.facebook,
            updated_at = NOW()`,
			company.ID,
			stringOrNil(socials.LinkedIn),
			stringOrNil(socials.Twitter),
			stringOrNil(socials.Instagram),
			stringOrNil(socials.Facebook),
		)
		if err != nil {
			return fmt.Errorf("upsert social media: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save company tx: %w", err)
	}
	return nil
}

// SocialMedia returns the stored social profiles of a company. A company
// without a row yields an empty record.
func (r *PGXCompaniesRepository) SocialMedia(ctx context.Context, companyID uuid.UUID) (*entity.SocialMedia, error) {
	var linkedin, twitter, instagram, facebook sql.NullString
	err := r.pool.QueryRow(ctx, `
        SELECT linkedin, twitter, instagram, facebook
        FROM social_media
        WHERE company_id = $1`, companyID).Scan(&linkedin, &twitter, &instagram, &facebook)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.SocialMedia{CompanyID: companyID}, nil
		}
		return nil, fmt.Errorf("fetch social media: %w", err)
	}
	return &entity.SocialMedia{
		CompanyID: companyID,
		LinkedIn:  nullStringToPtr(linkedin),
		Twitter:   nullStringToPtr(twitter),
		Instagram: nullStringToPtr(instagram),
		Facebook:  nullStringToPtr(facebook),
	}, nil
}
