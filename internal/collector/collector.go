// Package collector drives paginated vacancy collection from the hh.ru API.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hhradar/internal/hh"
	"hhradar/internal/model"
)

const (
	// maxVacancies caps one run; the upstream rate-limits heavier pulls.
	maxVacancies = 500
	maxPerPage   = 50

	// pageDelay is the courtesy pause between successive page fetches.
	pageDelay = 500 * time.Millisecond
)

// PageSource provides one page of raw search results.
type PageSource interface {
	SearchPage(ctx context.Context, query string, page, perPage int) (*hh.SearchResponse, error)
}

// ItemMapper normalises one raw item, returning nil for unmappable records.
type ItemMapper interface {
	Map(ctx context.Context, item hh.Item) *model.Vacancy
}

// Collector accumulates mapped vacancies across search pages.
type Collector struct {
	source PageSource
	mapper ItemMapper
	delay  time.Duration
	logger *slog.Logger
}

// New constructs a Collector with the default inter-page delay.
func New(source PageSource, mapper ItemMapper, logger *slog.Logger) *Collector {
	return &Collector{source: source, mapper: mapper, delay: pageDelay, logger: logger}
}

// Collect pages through the search results for query until count vacancies
// are gathered or the upstream runs out of pages. Collection is best-effort:
// whatever was gathered before an early termination is returned. A non-nil
// error means the run stopped on a failed page request; the partial result
// alongside it is still valid.
func (c *Collector) Collect(ctx context.Context, query string, count int) ([]model.Vacancy, error) {
	if count > maxVacancies {
		count = maxVacancies
	}
	perPage := count
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var collected []model.Vacancy
	for page := 0; len(collected) < count; {
		c.logger.Info("fetching search page",
			"query", query, "page", page+1, "collected", len(collected), "target", count)

		resp, err := c.source.SearchPage(ctx, query, page, perPage)
		if err != nil {
			return collected, fmt.Errorf("search page %d: %w", page+1, err)
		}

		if len(resp.Items) == 0 {
			c.logger.Info("no vacancies on page", "page", page+1)
			break
		}

		for _, item := range resp.Items {
			if len(collected) >= count {
				break
			}
			if v := c.mapper.Map(ctx, item); v != nil {
				collected = append(collected, *v)
			}
		}

		if page >= resp.Pages-1 {
			c.logger.Info("reached last search page", "pages", resp.Pages)
			break
		}
		page++

		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}

	c.logger.Info("collection finished", "query", query, "collected", len(collected))
	return collected, nil
}
