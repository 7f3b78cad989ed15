package filter_test

import (
	"testing"

	"hhradar/internal/filter"
	"hhradar/internal/model"
)

func sample() model.Vacancy {
	return model.Vacancy{
		Title:       "Senior Go Developer",
		Company:     "Acme Robotics",
		Salary:      "100 000 - 200 000 ₽",
		Description: "Building backend services in Go and PostgreSQL.",
		Experience:  model.Experience3to6,
		Employment:  model.EmploymentRemote,
		Skills:      "Go, PostgreSQL, Docker",
		Link:        "https://hh.ru/vacancy/1",
	}
}

// ── No constraints ─────────────────────────────────────────────────────────

func TestMatches_EmptySpecPassesEverything(t *testing.T) {
	if !filter.Matches(sample(), model.FilterSpec{}) {
		t.Error("empty FilterSpec must match any vacancy")
	}
}

// ── Keywords ───────────────────────────────────────────────────────────────

func TestMatches_Keywords(t *testing.T) {
	cases := []struct {
		keywords string
		want     bool
	}{
		{"go", true},         // title, case-insensitive
		{"acme", true},       // company
		{"postgresql", true}, // description and skills
		{"docker", true},     // skills only
		{"kubernetes", false},
	}
	for _, c := range cases {
		got := filter.Matches(sample(), model.FilterSpec{Keywords: c.keywords})
		if got != c.want {
			t.Errorf("Keywords %q: got %v, want %v", c.keywords, got, c.want)
		}
	}
}

// ── Salary floor ───────────────────────────────────────────────────────────

func TestMatches_SalaryFloorUsesMaximumNumber(t *testing.T) {
	v := sample() // "100 000 - 200 000 ₽"

	if !filter.Matches(v, model.FilterSpec{MinSalary: 150000}) {
		t.Error("floor 150000 against range up to 200000 should pass")
	}
	if filter.Matches(v, model.FilterSpec{MinSalary: 250000}) {
		t.Error("floor 250000 against range up to 200000 should fail")
	}
}

func TestMatches_UnspecifiedSalaryAlwaysPasses(t *testing.T) {
	v := sample()
	v.Salary = model.SalaryNotSpecified

	if !filter.Matches(v, model.FilterSpec{MinSalary: 1000000}) {
		t.Error("sentinel salary must never exclude a vacancy")
	}
}

func TestMaxSalary(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"100 000 - 200 000 ₽", 200000, true},
		{"from 80 000 USD", 80000, true},
		{"up to 50 000 ₽", 50000, true},
		{"not specified", 0, false},
		{"", 0, false},
		{"negotiable", 0, false},
	}
	for _, c := range cases {
		got, ok := filter.MaxSalary(c.in)
		if got != c.want || ok != c.wantOK {
			t.Errorf("MaxSalary(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

// ── Bucket equality ────────────────────────────────────────────────────────

func TestMatches_ExperienceEquality(t *testing.T) {
	if !filter.Matches(sample(), model.FilterSpec{Experience: model.Experience3to6}) {
		t.Error("matching experience bucket should pass")
	}
	if filter.Matches(sample(), model.FilterSpec{Experience: model.Experience6plus}) {
		t.Error("different experience bucket should fail")
	}
}

func TestMatches_EmploymentEquality(t *testing.T) {
	if !filter.Matches(sample(), model.FilterSpec{Employment: model.EmploymentRemote}) {
		t.Error("matching employment bucket should pass")
	}
	if filter.Matches(sample(), model.FilterSpec{Employment: model.EmploymentPart}) {
		t.Error("different employment bucket should fail")
	}
}

// ── Minimum experience years ───────────────────────────────────────────────

func TestMatches_MinExperienceYears(t *testing.T) {
	cases := []struct {
		bucket   model.ExperienceBucket
		minYears int
		want     bool
	}{
		{model.Experience3to6, 5, false}, // representative 4 < 5
		{model.Experience3to6, 4, true},
		{model.Experience6plus, 7, true},
		{model.Experience1to3, 3, false}, // representative 2 < 3
		{model.ExperienceNone, 1, false},
	}
	for _, c := range cases {
		v := sample()
		v.Experience = c.bucket
		got := filter.Matches(v, model.FilterSpec{MinExperienceYears: c.minYears})
		if got != c.want {
			t.Errorf("bucket %q minYears %d: got %v, want %v", c.bucket, c.minYears, got, c.want)
		}
	}
}

// ── Conjunction ────────────────────────────────────────────────────────────

func TestMatches_AllPredicatesMustPass(t *testing.T) {
	spec := model.FilterSpec{
		Keywords:   "go",
		MinSalary:  150000,
		Experience: model.Experience3to6,
		Employment: model.EmploymentRemote,
	}
	if !filter.Matches(sample(), spec) {
		t.Error("vacancy satisfying every predicate should pass")
	}

	spec.Employment = model.EmploymentPart
	if filter.Matches(sample(), spec) {
		t.Error("one failing predicate must fail the whole spec")
	}
}
