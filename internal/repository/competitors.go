package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/leads-enricher/internal/entity"
)

// CompetitorsRepository stores competitor analyses.
type CompetitorsRepository interface {
	Create(ctx context.Context, competitor *entity.Competitor) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Competitor, error)
}

// PGXCompetitorsRepository implements CompetitorsRepository with pgx.
type PGXCompetitorsRepository struct {
	pool pgxPool
}

// NewPGXCompetitorsRepository instantiates a competitors repository.
func NewPGXCompetitorsRepository(pool *pgxpool.Pool) *PGXCompetitorsRepository {
	return &PGXCompetitorsRepository{pool: pool}
}

// Create inserts a competitor row.
func (r *PGXCompetitorsRepository) Create(ctx context.Context, c *entity.Competitor) error {
	if c == nil {
		return fmt.Errorf("competitor payload is nil")
	}
	row := r.pool.QueryRow(ctx, `
        INSERT INTO competitors (
            company_id, competitor_name, competitor_website, competitor_industry, competitor_size,
            market_position, strengths, weaknesses, similarity_score, ai_comparison
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`,
		c.CompanyID, c.Name, c.Website, c.Industry, c.Size,
		c.MarketPosition, c.Strengths, c.Weaknesses, c.SimilarityScore, c.AIComparison,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("insert competitor: %w", err)
	}
	return nil
}

// ListByCompany returns the competitors recorded for a company, most similar first.
func (r *PGXCompetitorsRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Competitor, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, company_id, competitor_name, competitor_website, competitor_industry, competitor_size,
               market_position, strengths, weaknesses, similarity_score, ai_comparison, created_at, updated_at
        FROM competitors
        WHERE company_id = $1
        ORDER BY similarity_score DESC, created_at ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list competitors: %w", err)
	}
	defer rows.Close()

	var out []entity.Competitor
	for rows.Next() {
		var c entity.Competitor
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.Website, &c.Industry, &c.Size,
			&c.MarketPosition, &c.Strengths, &c.Weaknesses, &c.SimilarityScore, &c.AIComparison,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan competitor row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate competitors: %w", err)
	}
	return out, nil
}
