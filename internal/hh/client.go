// Package hh implements the hh.ru API client and the normalisation of raw
// vacancy payloads into canonical records.
package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the hh.ru vacancy search endpoint.
	DefaultBaseURL = "https://api.hh.ru/vacancies"

	searchTimeout      = 15 * time.Second
	descriptionTimeout = 10 * time.Second
	descriptionLimit   = 1500

	// Moscow; the search is intentionally pinned to one region.
	areaMoscow = "1"

	userAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"
	hhUserAgent = "hhradar"
)

// tagPattern removes any <...> span. Deliberately not a full HTML parser:
// descriptions are lightly marked up and a tag-matching pattern is enough.
var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// Client talks to the hh.ru API. All session state (base URL, headers,
// timeouts) is constructed explicitly here; there are no package-level
// defaults mutated at runtime.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient constructs a Client with a shared HTTP client. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: searchTimeout},
		logger:  logger,
	}
}

// SearchResponse mirrors the top-level hh.ru search payload.
type SearchResponse struct {
	Items []Item `json:"items"`
	Pages int    `json:"pages"`
	Found int    `json:"found"`
}

// Item mirrors a single raw vacancy in a search page. Only the fields the
// mapper consumes are declared.
type Item struct {
	Name         string     `json:"name"`
	AlternateURL string     `json:"alternate_url"`
	URL          string     `json:"url"` // detail resource locator
	Employer     Employer   `json:"employer"`
	Salary       *RawSalary `json:"salary"`
	Experience   IDRef      `json:"experience"`
	Employment   IDRef      `json:"employment"`
	KeySkills    []Skill    `json:"key_skills"`
	Snippet      Snippet    `json:"snippet"`
}

// Employer mirrors the employer block.
type Employer struct {
	Name string `json:"name"`
}

// RawSalary mirrors the structured salary block.
type RawSalary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

// IDRef mirrors hh.ru's {id, name} enumeration references.
type IDRef struct {
	ID string `json:"id"`
}

// Skill mirrors one key_skills entry.
type Skill struct {
	Name string `json:"name"`
}

// Snippet mirrors the short search-result description fragments.
type Snippet struct {
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
}

// SearchPage requests one page of vacancies for the query. Fixed extra
// parameters: Moscow region, no salary-presence restriction.
func (c *Client) SearchPage(ctx context.Context, query string, page, perPage int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("text", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("area", areaMoscow)
	params.Set("only_with_salary", "false")

	body, err := c.get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &resp, nil
}

// Description fetches and sanitises the long-form description behind a
// detail locator. It never fails: any error (network, status, payload)
// is logged and an empty string returned. An empty locator short-circuits
// without a network call.
func (c *Client) Description(ctx context.Context, detailURL string) string {
	if detailURL == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, descriptionTimeout)
	defer cancel()

	body, err := c.get(ctx, detailURL)
	if err != nil {
		c.logger.Warn("description fetch failed", "url", detailURL, "err", err)
		return ""
	}

	var detail struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		c.logger.Warn("description decode failed", "url", detailURL, "err", err)
		return ""
	}

	return Sanitize(detail.Description, descriptionLimit)
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("HH-User-Agent", hhUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hh.ru returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Sanitize strips markup tags from s and truncates the result to limit runes.
func Sanitize(s string, limit int) string {
	clean := tagPattern.ReplaceAllString(s, "")
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return clean
}
