// Package service exposes the query surface of hhradar: collection runs,
// filtered listing, statistics and letter generation. It is transport-agnostic:
// used by the HTTP server (server package) and the cron scheduler.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hhradar/internal/filter"
	"hhradar/internal/letter"
	"hhradar/internal/model"
	"hhradar/internal/store"
)

const (
	// PageSize is the fixed page size of list reads.
	PageSize = 20

	// DefaultQuery and DefaultCount apply when a collect request leaves
	// them unset.
	DefaultQuery = "Python"
	DefaultCount = 50

	statsCacheKey    = "hhradar:stats"
	statsCacheTTL    = 5 * time.Minute
	collectedChannel = "vacancies.collected"
)

// VacancyCollector gathers vacancies for a query, best-effort.
type VacancyCollector interface {
	Collect(ctx context.Context, query string, count int) ([]model.Vacancy, error)
}

// VacancyStore is the persistence surface the service needs.
type VacancyStore interface {
	UpsertBatch(ctx context.Context, vacancies []model.Vacancy) store.UpsertSummary
	List(ctx context.Context, f model.FilterSpec) ([]model.Vacancy, error)
	Get(ctx context.Context, id int64) (*model.Vacancy, error)
	Stats(ctx context.Context) (*model.StatsResult, error)
}

// Service encapsulates the hhradar business logic.
type Service struct {
	collector VacancyCollector
	store     VacancyStore
	rdb       *redis.Client // nil disables caching and event publication
	logger    *slog.Logger
}

// New returns a configured Service. rdb may be nil.
func New(collector VacancyCollector, st VacancyStore, rdb *redis.Client, logger *slog.Logger) *Service {
	return &Service{collector: collector, store: st, rdb: rdb, logger: logger}
}

// CollectRequest parametrises one collection run. Filters, when active,
// narrow the freshly fetched set before it is persisted.
type CollectRequest struct {
	Query   string
	Count   int
	Filters model.FilterSpec
}

// Collect runs the fetch-normalise-persist pipeline. It never returns an
// error for upstream failures: a failed search request ends the run early
// and whatever was gathered is persisted and reported (best-effort policy).
// An upstream that yields zero items is a clean NoData outcome, not a failure.
func (s *Service) Collect(ctx context.Context, req CollectRequest) *model.CollectionResult {
	query := req.Query
	if query == "" {
		query = DefaultQuery
	}
	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}

	collected, collectErr := s.collector.Collect(ctx, query, count)
	if collectErr != nil {
		s.logger.Warn("collection stopped early", "query", query, "err", collectErr)
	}

	if len(collected) == 0 {
		res := &model.CollectionResult{NoData: collectErr == nil}
		if collectErr != nil {
			res.Message = fmt.Sprintf("collection failed before any vacancies were gathered: %v", collectErr)
		} else {
			res.Message = "upstream returned no vacancies"
		}
		return res
	}

	if req.Filters.Active() {
		matched := collected[:0]
		for _, v := range collected {
			if filter.Matches(v, req.Filters) {
				matched = append(matched, v)
			}
		}
		collected = matched
		s.logger.Info("applied filters to fresh vacancies", "query", query, "matched", len(collected))
	}

	sum := s.store.UpsertBatch(ctx, collected)

	res := &model.CollectionResult{
		Found:   len(collected),
		Saved:   sum.Inserted,
		Updated: sum.Updated,
		Skipped: sum.Skipped,
		Message: fmt.Sprintf("found %d vacancies: %d saved, %d updated, %d skipped",
			len(collected), sum.Inserted, sum.Updated, sum.Skipped),
	}
	if collectErr != nil {
		res.Message += fmt.Sprintf(" (stopped early: %v)", collectErr)
	}

	if sum.Inserted > 0 || sum.Updated > 0 {
		s.afterCollection(ctx, query, res)
	}
	return res
}

// afterCollection invalidates the cached statistics and announces the run.
// Both are non-fatal conveniences.
func (s *Service) afterCollection(ctx context.Context, query string, res *model.CollectionResult) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", "err", err)
	}

	event, _ := json.Marshal(map[string]any{
		"query":   query,
		"found":   res.Found,
		"saved":   res.Saved,
		"updated": res.Updated,
	})
	if err := s.rdb.Publish(ctx, collectedChannel, event).Err(); err != nil {
		s.logger.Warn("publish vacancies.collected failed", "err", err)
	}
}

// List returns one fixed-size page of stored vacancies, newest first.
// Keyword and equality constraints are pushed down to storage; the salary
// floor is completed here through the predicate filter so both paths agree.
func (s *Service) List(ctx context.Context, f model.FilterSpec, page int) (*model.ListResult, error) {
	rows, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}

	matched := rows[:0]
	for _, v := range rows {
		if filter.Matches(v, f) {
			matched = append(matched, v)
		}
	}

	total := len(matched)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return &model.ListResult{
		Items:            matched[start:end],
		TotalCount:       total,
		Page:             page,
		TotalPages:       totalPages,
		HasActiveFilters: f.Active(),
	}, nil
}

// Stats returns aggregate counts, served from a short-lived Redis cache when
// available. Cache trouble degrades to a direct read, never to an error.
func (s *Service) Stats(ctx context.Context) (*model.StatsResult, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats model.StatsResult
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("stats cache read failed", "err", err)
		}
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", "err", err)
			}
		}
	}
	return stats, nil
}

// Letter renders a cover-letter draft for a stored vacancy.
// Returns store.ErrNotFound for an unknown ID.
func (s *Service) Letter(ctx context.Context, vacancyID int64) (string, error) {
	v, err := s.store.Get(ctx, vacancyID)
	if err != nil {
		return "", err
	}
	return letter.Render(*v), nil
}
