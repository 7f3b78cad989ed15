// Package model defines the canonical data structures shared across hhradar.
package model

import "time"

// SalaryNotSpecified is the sentinel stored when the upstream posting carries
// no salary at all. The salary-floor filter treats it as "always passes".
const SalaryNotSpecified = "not specified"

// CompanyUnspecified is the sentinel stored when the employer name is absent.
const CompanyUnspecified = "Unspecified"

// ExperienceBucket is one of the four experience categories hh.ru vacancies
// fall into. Stored as its short code.
type ExperienceBucket string

const (
	ExperienceNone  ExperienceBucket = "no"
	Experience1to3  ExperienceBucket = "1-3"
	Experience3to6  ExperienceBucket = "3-6"
	Experience6plus ExperienceBucket = "6+"
)

// ExperienceBuckets lists every bucket in ascending order of seniority.
var ExperienceBuckets = []ExperienceBucket{
	ExperienceNone, Experience1to3, Experience3to6, Experience6plus,
}

// Valid reports whether b is one of the four known codes.
func (b ExperienceBucket) Valid() bool {
	switch b {
	case ExperienceNone, Experience1to3, Experience3to6, Experience6plus:
		return true
	}
	return false
}

// Display returns the human-readable label for the bucket.
func (b ExperienceBucket) Display() string {
	switch b {
	case ExperienceNone:
		return "No experience"
	case Experience1to3:
		return "1-3 years"
	case Experience3to6:
		return "3-6 years"
	case Experience6plus:
		return "More than 6 years"
	}
	return string(b)
}

// Years returns the representative year count used for the minimum-years
// filter: the range midpoint, or 7 for the open-ended top bucket.
func (b ExperienceBucket) Years() int {
	switch b {
	case Experience1to3:
		return 2
	case Experience3to6:
		return 4
	case Experience6plus:
		return 7
	}
	return 0
}

// EmploymentBucket is one of the four employment categories. Stored as its
// short code.
type EmploymentBucket string

const (
	EmploymentFull    EmploymentBucket = "full"
	EmploymentPart    EmploymentBucket = "part"
	EmploymentRemote  EmploymentBucket = "remote"
	EmploymentProject EmploymentBucket = "project"
)

// EmploymentBuckets lists every employment bucket.
var EmploymentBuckets = []EmploymentBucket{
	EmploymentFull, EmploymentPart, EmploymentRemote, EmploymentProject,
}

// Valid reports whether b is one of the four known codes.
func (b EmploymentBucket) Valid() bool {
	switch b {
	case EmploymentFull, EmploymentPart, EmploymentRemote, EmploymentProject:
		return true
	}
	return false
}

// Display returns the human-readable label for the bucket.
func (b EmploymentBucket) Display() string {
	switch b {
	case EmploymentFull:
		return "Full time"
	case EmploymentPart:
		return "Part time"
	case EmploymentRemote:
		return "Remote"
	case EmploymentProject:
		return "Project work"
	}
	return string(b)
}

// Vacancy is a normalised job posting fetched from hh.ru.
// Link uniquely identifies a posting; upserts are keyed by it and never
// touch CreatedAt after the first insert.
type Vacancy struct {
	ID          int64            `json:"id,omitempty"`
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Salary      string           `json:"salary"`
	Description string           `json:"description"`
	Experience  ExperienceBucket `json:"experience"`
	Employment  EmploymentBucket `json:"employment"`
	Skills      string           `json:"skills"`
	Link        string           `json:"link"`
	CreatedAt   time.Time        `json:"created_at"`
}

// FilterSpec is the set of optional user-supplied constraints used to narrow
// a vacancy set. A zero field means "no constraint from this field".
type FilterSpec struct {
	Keywords           string           `json:"keywords,omitempty"`
	MinSalary          int              `json:"min_salary,omitempty"`
	Experience         ExperienceBucket `json:"experience,omitempty"`
	Employment         EmploymentBucket `json:"employment,omitempty"`
	MinExperienceYears int              `json:"min_experience_years,omitempty"`
}

// Active reports whether any constraint is set.
func (f FilterSpec) Active() bool {
	return f.Keywords != "" || f.MinSalary > 0 || f.Experience != "" ||
		f.Employment != "" || f.MinExperienceYears > 0
}

// CollectionResult summarises one collection run.
type CollectionResult struct {
	Found   int    `json:"found"`
	Saved   int    `json:"saved"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	NoData  bool   `json:"no_data"`
	Message string `json:"message"`
}

// ListResult is one page of stored vacancies.
type ListResult struct {
	Items            []Vacancy `json:"items"`
	TotalCount       int       `json:"total_count"`
	Page             int       `json:"page"`
	TotalPages       int       `json:"total_pages"`
	HasActiveFilters bool      `json:"has_active_filters"`
}

// StatsResult aggregates counts over the stored vacancies.
type StatsResult struct {
	Total           int                      `json:"total"`
	RecentCount     int                      `json:"recent_count"`
	ExperienceStats map[ExperienceBucket]int `json:"experience_stats"`
	EmploymentStats map[EmploymentBucket]int `json:"employment_stats"`
}
