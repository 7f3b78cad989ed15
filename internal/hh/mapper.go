package hh

import (
	"context"
	"log/slog"
	"strings"

	"hhradar/internal/model"
)

const (
	skillsLimit    = 1000
	truncationMark = "..."
)

// experienceByID and employmentByID translate hh.ru enumeration codes into
// domain buckets. Unrecognised or missing codes deliberately fall back to the
// lenient defaults below rather than rejecting the record — the upstream adds
// codes faster than we track them.
var experienceByID = map[string]model.ExperienceBucket{
	"noExperience": model.ExperienceNone,
	"between1And3": model.Experience1to3,
	"between3And6": model.Experience3to6,
	"moreThan6":    model.Experience6plus,
}

var employmentByID = map[string]model.EmploymentBucket{
	"full":    model.EmploymentFull,
	"part":    model.EmploymentPart,
	"remote":  model.EmploymentRemote,
	"project": model.EmploymentProject,
}

// DescriptionFetcher retrieves the sanitised long-form description behind a
// detail locator. Implementations must never fail; absence is an empty string.
type DescriptionFetcher interface {
	Description(ctx context.Context, detailURL string) string
}

// Mapper converts raw search items into canonical vacancies.
type Mapper struct {
	descriptions DescriptionFetcher
	logger       *slog.Logger
}

// NewMapper constructs a Mapper.
func NewMapper(descriptions DescriptionFetcher, logger *slog.Logger) *Mapper {
	return &Mapper{descriptions: descriptions, logger: logger}
}

// Map normalises one raw item. It returns nil when the item lacks a title or
// a canonical URL; every other oddity degrades to a default instead.
func (m *Mapper) Map(ctx context.Context, item Item) *model.Vacancy {
	title := strings.TrimSpace(item.Name)
	link := strings.TrimSpace(item.AlternateURL)
	if title == "" || link == "" {
		m.logger.Warn("skipping vacancy: missing title or link", "title", title, "link", link)
		return nil
	}

	company := strings.TrimSpace(item.Employer.Name)
	if company == "" {
		company = model.CompanyUnspecified
	}

	experience := model.ExperienceNone
	if b, ok := experienceByID[item.Experience.ID]; ok {
		experience = b
	}
	employment := model.EmploymentFull
	if b, ok := employmentByID[item.Employment.ID]; ok {
		employment = b
	}

	return &model.Vacancy{
		Title:       title,
		Company:     company,
		Salary:      FormatSalary(item.Salary),
		Description: m.description(ctx, item),
		Experience:  experience,
		Employment:  employment,
		Skills:      joinSkills(item.KeySkills),
		Link:        link,
	}
}

// description prefers the full detail fetch; when that yields nothing it
// falls back to the short search snippet, and finally to an empty string.
func (m *Mapper) description(ctx context.Context, item Item) string {
	if full := m.descriptions.Description(ctx, item.URL); full != "" {
		return full
	}

	snippet := strings.TrimSpace(strings.Join(nonEmpty(
		item.Snippet.Responsibility, item.Snippet.Requirement), " "))
	if snippet == "" {
		return ""
	}
	return Sanitize(snippet, descriptionLimit)
}

func joinSkills(skills []Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	joined := strings.Join(names, ", ")
	runes := []rune(joined)
	if len(runes) > skillsLimit {
		return string(runes[:skillsLimit]) + truncationMark
	}
	return joined
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
