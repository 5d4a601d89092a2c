package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
)

func leadDetailValues() []any {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	values := []any{
		leadID, companyID, "Jane Williams", "jane@acme.com", "valid", 85, "555-123-4567", "CEO",
		"https://linkedin.com/in/jane", sql.NullTime{}, sql.NullTime{Time: created, Valid: true}, "call back",
		"email", "high", "Strong fit", "",
		created, created,
	}
	values = append(values, companyValues("Acme")...)
	return append(values,
		sql.NullString{String: "https://www.linkedin.com/company/acme", Valid: true},
		sql.NullString{String: "https://twitter.com/acme", Valid: true},
		sql.NullString{}, sql.NullString{},
	)
}

func TestPGXLeadsRepository_ListAppliesFilters(t *testing.T) {
	var (
		gotSQL  string
		gotArgs []any
	)
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotSQL, gotArgs = sql, args
			return &stubRows{records: [][]any{leadDetailValues()}}, nil
		},
	}}

	ids := []uuid.UUID{leadID}
	leads, err := repo.List(context.Background(), dto.LeadFilter{Industry: "Technology", CompanySize: "Enterprise", IDs: ids})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, clause := range []string{"c.industry = $1", "c.size = $2", "l.id = ANY($3)", "LEFT JOIN social_media"} {
		if !strings.Contains(gotSQL, clause) {
			t.Fatalf("expected %q in query: %s", clause, gotSQL)
		}
	}
	if strings.Contains(gotSQL, "l.email_status =") {
		t.Fatalf("unexpected email status clause: %s", gotSQL)
	}
	if len(gotArgs) != 3 || gotArgs[0] != "Technology" || gotArgs[1] != "Enterprise" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	lead := leads[0]
	if lead.Name != "Jane Williams" || lead.Score != 85 || lead.Company.Name != "Acme" {
		t.Fatalf("unexpected lead: %+v", lead)
	}
	if lead.LastContactDate != nil || lead.NextFollowUp == nil {
		t.Fatalf("unexpected follow-up dates: %v %v", lead.LastContactDate, lead.NextFollowUp)
	}
	if lead.SocialMedia.Twitter == nil || lead.SocialMedia.Instagram != nil || lead.SocialMedia.CompanyID != companyID {
		t.Fatalf("unexpected socials: %+v", lead.SocialMedia)
	}
}

func TestPGXLeadsRepository_GetNotFound(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(context.Context, string, ...any) pgx.Row { return stubRow{err: pgx.ErrNoRows} },
	}}
	if _, err := repo.Get(context.Background(), leadID); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestPGXLeadsRepository_CreateDuplicateEmail(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			if len(args) != 15 {
				t.Fatalf("expected 15 args, got %d", len(args))
			}
			return stubRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "leads_email_key"}}
		},
	}}
	err := repo.Create(context.Background(), &entity.Lead{Email: "jane@acme.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestPGXLeadsRepository_CreateFillsGeneratedFields(t *testing.T) {
	created := time.Now()
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			if args[8] != nil {
				t.Fatalf("expected NULL last_contact_date, got %v", args[8])
			}
			return stubRow{values: []any{leadID, created, created}}
		},
	}}
	lead := &entity.Lead{CompanyID: companyID, Name: "Jane", Email: "jane@acme.com"}
	if err := repo.Create(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.ID != leadID || !lead.CreatedAt.Equal(created) {
		t.Fatalf("expected generated fields, got %+v", lead)
	}
}

func TestPGXLeadsRepository_Update(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			if len(args) != 16 || args[15] != leadID {
				t.Fatalf("expected id as last arg, got %v", args)
			}
			return stubRow{err: pgx.ErrNoRows}
		},
	}}
	if err := repo.Update(context.Background(), &entity.Lead{ID: leadID}); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
	if err := repo.Update(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil lead")
	}
}

func TestPGXCompetitorsRepository(t *testing.T) {
	created := time.Now()
	competitorID := uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	repo := &PGXCompetitorsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			if len(args) != 10 || args[1] != "Globex" || args[8] != 70 {
				t.Fatalf("unexpected insert args: %v", args)
			}
			return stubRow{values: []any{competitorID, created, created}}
		},
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &stubRows{records: [][]any{{
				competitorID, companyID, "Globex", "https://globex.com", "Technology", "Enterprise",
				"challenger", "Globex has a strong online presence.", "Further analysis required to determine specific weaknesses.",
				70, "Both compete.", created, created,
			}}}, nil
		},
	}}

	c := &entity.Competitor{CompanyID: companyID, Name: "Globex", SimilarityScore: 70}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != competitorID {
		t.Fatalf("expected generated id, got %s", c.ID)
	}

	list, err := repo.ListByCompany(context.Background(), companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].MarketPosition != "challenger" || list[0].SimilarityScore != 70 {
		t.Fatalf("unexpected competitors: %+v", list)
	}
}
