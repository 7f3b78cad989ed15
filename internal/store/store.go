// Package store persists canonical vacancies in PostgreSQL, keyed by link.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hhradar/internal/model"
)

// ErrNotFound is returned when a vacancy lookup matches no row.
var ErrNotFound = errors.New("vacancy not found")

// Store wraps the vacancies table.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New returns a configured Store.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{pool: pool, logger: logger}
}

// UpsertSummary reports the outcome of one batch upsert.
type UpsertSummary struct {
	Inserted int
	Updated  int
	Skipped  int
}

// ValidateCandidate rejects vacancies that must never reach the table:
// missing titles and missing or non-URL-shaped links. Validation happens
// here as well as in the mapper because candidates may arrive from other
// sources.
func ValidateCandidate(v model.Vacancy) error {
	if strings.TrimSpace(v.Title) == "" {
		return errors.New("missing title")
	}
	link := strings.TrimSpace(v.Link)
	if link == "" {
		return errors.New("missing link")
	}
	if !strings.HasPrefix(link, "http") {
		return fmt.Errorf("malformed link %q", link)
	}
	return nil
}

// UpsertBatch inserts or updates each candidate by link. Invalid candidates
// and per-record persistence errors are logged, counted as skipped, and never
// abort the batch. CreatedAt and Link are immutable on update.
func (s *Store) UpsertBatch(ctx context.Context, vacancies []model.Vacancy) UpsertSummary {
	var sum UpsertSummary

	for _, v := range vacancies {
		if err := ValidateCandidate(v); err != nil {
			s.logger.Warn("skipping vacancy", "title", v.Title, "reason", err)
			sum.Skipped++
			continue
		}

		// xmax = 0 only holds for a freshly inserted row version, which
		// distinguishes insert from conflict-update.
		var inserted bool
		err := s.pool.QueryRow(ctx,
			`INSERT INTO vacancies (title, company, salary, description, experience, employment, skills, link)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (link) DO UPDATE SET
			   title = EXCLUDED.title,
			   company = EXCLUDED.company,
			   salary = EXCLUDED.salary,
			   description = EXCLUDED.description,
			   experience = EXCLUDED.experience,
			   employment = EXCLUDED.employment,
			   skills = EXCLUDED.skills
			 RETURNING (xmax = 0)`,
			strings.TrimSpace(v.Title), v.Company, v.Salary, v.Description,
			string(v.Experience), string(v.Employment), v.Skills, strings.TrimSpace(v.Link),
		).Scan(&inserted)
		if err != nil {
			s.logger.Warn("upsert failed", "link", v.Link, "err", err)
			sum.Skipped++
			continue
		}

		if inserted {
			sum.Inserted++
		} else {
			sum.Updated++
		}
	}

	return sum
}

// List returns vacancies newest-first with keyword, bucket-equality and
// minimum-years constraints pushed down to SQL. The salary floor is not
// pushed down: the stored salary is a formatted string and its floor check
// is defined on extracted digit runs, which the filter package owns.
func (s *Store) List(ctx context.Context, f model.FilterSpec) ([]model.Vacancy, error) {
	query := `SELECT id, title, company, salary, description, experience, employment, skills, link, created_at
	          FROM vacancies`

	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Keywords != "" {
		p := arg("%" + f.Keywords + "%")
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE %[1]s OR company ILIKE %[1]s OR description ILIKE %[1]s OR skills ILIKE %[1]s)", p))
	}
	if f.Experience != "" {
		clauses = append(clauses, "experience = "+arg(string(f.Experience)))
	}
	if f.Employment != "" {
		clauses = append(clauses, "employment = "+arg(string(f.Employment)))
	}
	if f.MinExperienceYears > 0 {
		var codes []string
		for _, b := range model.ExperienceBuckets {
			if b.Years() >= f.MinExperienceYears {
				codes = append(codes, string(b))
			}
		}
		clauses = append(clauses, "experience = ANY("+arg(codes)+")")
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	vacancies := make([]model.Vacancy, 0)
	for rows.Next() {
		var v model.Vacancy
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Company, &v.Salary, &v.Description,
			&v.Experience, &v.Employment, &v.Skills, &v.Link, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}

// Get returns one vacancy by ID.
func (s *Store) Get(ctx context.Context, id int64) (*model.Vacancy, error) {
	var v model.Vacancy
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, salary, description, experience, employment, skills, link, created_at
		 FROM vacancies WHERE id = $1`, id,
	).Scan(
		&v.ID, &v.Title, &v.Company, &v.Salary, &v.Description,
		&v.Experience, &v.Employment, &v.Skills, &v.Link, &v.CreatedAt,
	)
	if err != nil {
		return nil, ErrNotFound
	}
	return &v, nil
}

// Stats aggregates counts over the whole table: total, rows from the last
// seven days, and per-bucket breakdowns. Buckets with no rows report zero.
func (s *Store) Stats(ctx context.Context) (*model.StatsResult, error) {
	stats := &model.StatsResult{
		ExperienceStats: make(map[model.ExperienceBucket]int, len(model.ExperienceBuckets)),
		EmploymentStats: make(map[model.EmploymentBucket]int, len(model.EmploymentBuckets)),
	}
	for _, b := range model.ExperienceBuckets {
		stats.ExperienceStats[b] = 0
	}
	for _, b := range model.EmploymentBuckets {
		stats.EmploymentStats[b] = 0
	}

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		 FROM vacancies`,
	).Scan(&stats.Total, &stats.RecentCount)
	if err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT experience, COUNT(*) FROM vacancies GROUP BY experience`)
	if err != nil {
		return nil, fmt.Errorf("stats experience: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			bucket model.ExperienceBucket
			count  int
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("stats experience scan: %w", err)
		}
		stats.ExperienceStats[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx, `SELECT employment, COUNT(*) FROM vacancies GROUP BY employment`)
	if err != nil {
		return nil, fmt.Errorf("stats employment: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			bucket model.EmploymentBucket
			count  int
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("stats employment scan: %w", err)
		}
		stats.EmploymentStats[bucket] = count
	}
	return stats, rows.Err()
}
