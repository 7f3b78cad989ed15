package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"hhradar/internal/hh"
	"hhradar/internal/model"
)

// stubSource serves scripted pages; a nil page entry produces an error.
type stubSource struct {
	pages    []*hh.SearchResponse
	requests int
}

func (s *stubSource) SearchPage(_ context.Context, _ string, page, _ int) (*hh.SearchResponse, error) {
	s.requests++
	if page >= len(s.pages) || s.pages[page] == nil {
		return nil, errors.New("connection refused")
	}
	return s.pages[page], nil
}

// passMapper maps every item with a non-empty name, mirroring the real
// mapper's reject-on-missing-title behaviour without touching the network.
type passMapper struct{}

func (passMapper) Map(_ context.Context, item hh.Item) *model.Vacancy {
	if item.Name == "" {
		return nil
	}
	return &model.Vacancy{Title: item.Name, Link: item.AlternateURL}
}

func items(n int) []hh.Item {
	out := make([]hh.Item, n)
	for i := range out {
		out[i] = hh.Item{
			Name:         fmt.Sprintf("Vacancy %d", i),
			AlternateURL: fmt.Sprintf("https://hh.ru/vacancy/%d", i),
		}
	}
	return out
}

func testCollector(source PageSource) *Collector {
	c := New(source, passMapper{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.delay = 0
	return c
}

func TestCollect_StopsOnEmptyPage(t *testing.T) {
	// 30 vacancies across pages 0-1, page 2 empty; 100 requested.
	source := &stubSource{pages: []*hh.SearchResponse{
		{Items: items(20), Pages: 5},
		{Items: items(10), Pages: 5},
		{Items: nil, Pages: 5},
	}}

	got, err := testCollector(source).Collect(context.Background(), "go", 100)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 30 {
		t.Errorf("collected %d vacancies, want 30", len(got))
	}
}

func TestCollect_StopsAtReportedPageCount(t *testing.T) {
	source := &stubSource{pages: []*hh.SearchResponse{
		{Items: items(20), Pages: 2},
		{Items: items(20), Pages: 2},
		{Items: items(20), Pages: 2}, // must never be requested
	}}

	got, err := testCollector(source).Collect(context.Background(), "go", 100)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 40 {
		t.Errorf("collected %d vacancies, want 40", len(got))
	}
	if source.requests != 2 {
		t.Errorf("made %d page requests, want 2", source.requests)
	}
}

func TestCollect_StopsOnceCountSatisfied(t *testing.T) {
	source := &stubSource{pages: []*hh.SearchResponse{
		{Items: items(50), Pages: 10},
	}}

	got, err := testCollector(source).Collect(context.Background(), "go", 25)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 25 {
		t.Errorf("collected %d vacancies, want 25", len(got))
	}
	if source.requests != 1 {
		t.Errorf("made %d page requests, want 1", source.requests)
	}
}

func TestCollect_MalformedItemsAreSkippedNotFatal(t *testing.T) {
	page := items(10)
	page[3].Name = "" // unmappable

	source := &stubSource{pages: []*hh.SearchResponse{
		{Items: page, Pages: 1},
	}}

	got, err := testCollector(source).Collect(context.Background(), "go", 100)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 9 {
		t.Errorf("collected %d vacancies, want 9 (one skipped)", len(got))
	}
}

func TestCollect_RequestErrorReturnsPartialResults(t *testing.T) {
	source := &stubSource{pages: []*hh.SearchResponse{
		{Items: items(20), Pages: 5},
		nil, // page 1 fails
	}}

	got, err := testCollector(source).Collect(context.Background(), "go", 100)
	if err == nil {
		t.Error("Collect should report the failed page request")
	}
	if len(got) != 20 {
		t.Errorf("collected %d vacancies, want the 20 gathered before the failure", len(got))
	}
}

func TestCollect_ClampsRequestedCount(t *testing.T) {
	// Every page is full; the run must stop at the 500 cap.
	pages := make([]*hh.SearchResponse, 20)
	for i := range pages {
		pages[i] = &hh.SearchResponse{Items: items(50), Pages: 20}
	}
	source := &stubSource{pages: pages}

	got, err := testCollector(source).Collect(context.Background(), "go", 2000)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 500 {
		t.Errorf("collected %d vacancies, want the 500 cap", len(got))
	}
}
