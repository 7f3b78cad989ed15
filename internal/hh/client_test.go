package hh

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchPage_DecodesPayload(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"items":[{"name":"Go Dev","alternate_url":"https://hh.ru/vacancy/1"}],"pages":3,"found":120}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, discardLogger())
	resp, err := c.SearchPage(context.Background(), "golang", 2, 50)
	if err != nil {
		t.Fatalf("SearchPage: %v", err)
	}
	if len(resp.Items) != 1 || resp.Pages != 3 || resp.Found != 120 {
		t.Errorf("SearchPage = %+v", resp)
	}
	for _, param := range []string{"text=golang", "page=2", "per_page=50", "area=1", "only_with_salary=false"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("request query %q missing %q", gotQuery, param)
		}
	}
}

func TestSearchPage_NonOKStatusIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "captcha required", http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, discardLogger())
	if _, err := c.SearchPage(context.Background(), "golang", 0, 50); err == nil {
		t.Error("SearchPage on 403 expected error, got nil")
	}
}

func TestDescription_StripsTagsAndTruncates(t *testing.T) {
	long := strings.Repeat("a", 2000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"description":"<p>Hello <b>world</b></p>%s"}`, long)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, discardLogger())
	got := c.Description(context.Background(), ts.URL+"/vacancies/1")
	if !strings.HasPrefix(got, "Hello world") {
		t.Errorf("Description = %q, want tag-stripped text", got[:20])
	}
	if len([]rune(got)) != 1500 {
		t.Errorf("Description length = %d, want 1500", len([]rune(got)))
	}
}

func TestDescription_EmptyLocatorSkipsNetwork(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := NewClient(ts.URL, discardLogger())
	if got := c.Description(context.Background(), ""); got != "" {
		t.Errorf("Description(\"\") = %q, want empty", got)
	}
	if called {
		t.Error("empty locator must not hit the network")
	}
}

func TestDescription_FailuresYieldEmptyString(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, discardLogger())
	if got := c.Description(context.Background(), ts.URL+"/vacancies/1"); got != "" {
		t.Errorf("Description on 500 = %q, want empty", got)
	}

	// Unreachable host: connection error, still empty.
	if got := c.Description(context.Background(), "http://127.0.0.1:1/vacancies/1"); got != "" {
		t.Errorf("Description on dead host = %q, want empty", got)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"<p>plain</p>", 100, "plain"},
		{"no tags at all", 100, "no tags at all"},
		{"<ul><li>a</li><li>b</li></ul>", 100, "ab"},
		{"abcdef", 3, "abc"},
		{"", 100, ""},
	}
	for _, c := range cases {
		if got := Sanitize(c.in, c.limit); got != c.want {
			t.Errorf("Sanitize(%q, %d) = %q, want %q", c.in, c.limit, got, c.want)
		}
	}
}
