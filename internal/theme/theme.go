// Package theme applies cosmetic "themed" rewrites to vacancies for display.
// Transforms are pure and presentation-only; nothing here is ever persisted.
package theme

import (
	"time"

	"hhradar/internal/model"
)

// Style selects one of the novelty display themes.
type Style string

const (
	StyleNone Style = ""
	StyleHP   Style = "HP" // wizarding school
	StyleSP   Style = "SP" // cartoon mountain town
	StyleWH   Style = "WH" // grim far future
)

// ParseStyle maps a request parameter to a Style, treating anything unknown
// as the plain style.
func ParseStyle(s string) Style {
	switch Style(s) {
	case StyleHP, StyleSP, StyleWH:
		return Style(s)
	}
	return StyleNone
}

// StyledVacancy is the display shape of a vacancy after theming. Experience
// and employment carry the themed display text instead of bucket codes.
type StyledVacancy struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Salary      string    `json:"salary"`
	Experience  string    `json:"experience"`
	Employment  string    `json:"employment"`
	Description string    `json:"description"`
	Skills      string    `json:"skills"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

// Apply renders v in the given style.
func Apply(style Style, v model.Vacancy) StyledVacancy {
	return StyledVacancy{
		ID:          v.ID,
		Title:       styledTitle(style, v.Title),
		Company:     styledCompany(style, v.Company),
		Salary:      styledSalary(style, v.Salary),
		Experience:  experienceText(style, v.Experience),
		Employment:  employmentText(style, v.Employment),
		Description: v.Description,
		Skills:      v.Skills,
		Link:        v.Link,
		CreatedAt:   v.CreatedAt,
	}
}

// ApplyAll renders a whole result set.
func ApplyAll(style Style, vacancies []model.Vacancy) []StyledVacancy {
	styled := make([]StyledVacancy, 0, len(vacancies))
	for _, v := range vacancies {
		styled = append(styled, Apply(style, v))
	}
	return styled
}

func styledTitle(style Style, title string) string {
	switch style {
	case StyleHP:
		return "Scroll posting: " + title
	case StyleSP:
		return "Wanted in town: " + title
	case StyleWH:
		return "Imperial decree: " + title
	}
	return title
}

func styledCompany(style Style, company string) string {
	switch style {
	case StyleHP:
		return "House of " + company
	case StyleSP:
		return company + " (somewhere near the bus stop)"
	case StyleWH:
		return company + " sector command"
	}
	return company
}

func styledSalary(style Style, salary string) string {
	switch style {
	case StyleHP:
		return salary + " (in galleons, roughly)"
	case StyleSP:
		return salary + " (minus Cartman's cut)"
	case StyleWH:
		return salary + " (paid in imperial thrones)"
	}
	return salary
}

func experienceText(style Style, b model.ExperienceBucket) string {
	switch style {
	case StyleHP:
		switch b {
		case model.ExperienceNone:
			return "Neophyte (first-year)"
		case model.Experience1to3:
			return "1-3 years (upper-year student)"
		case model.Experience3to6:
			return "3-6 years (school graduate)"
		case model.Experience6plus:
			return "More than 6 years (professor)"
		}
	case StyleSP:
		switch b {
		case model.ExperienceNone:
			return "No experience (like the new kid)"
		case model.Experience1to3:
			return "1-3 years (fourth grade veteran)"
		case model.Experience3to6:
			return "3-6 years (been through some episodes)"
		case model.Experience6plus:
			return "More than 6 years (like the teacher)"
		}
	case StyleWH:
		switch b {
		case model.ExperienceNone:
			return "Neophyte (fresh recruit)"
		case model.Experience1to3:
			return "1-3 years (seasoned guardsman)"
		case model.Experience3to6:
			return "3-6 years (veteran of the line)"
		case model.Experience6plus:
			return "More than 6 years (grey knight)"
		}
	}
	return b.Display()
}

func employmentText(style Style, b model.EmploymentBucket) string {
	switch style {
	case StyleHP:
		switch b {
		case model.EmploymentFull:
			return "Full time (headmaster hours)"
		case model.EmploymentPart:
			return "Part time (between lessons)"
		case model.EmploymentRemote:
			return "Remote (via the fireplace)"
		case model.EmploymentProject:
			return "Project work (a quest)"
		}
	case StyleSP:
		switch b {
		case model.EmploymentFull:
			return "Full time (like the chef)"
		case model.EmploymentPart:
			return "Part time (between games)"
		case model.EmploymentRemote:
			return "Remote (from home)"
		case model.EmploymentProject:
			return "Project work (an adventure)"
		}
	case StyleWH:
		switch b {
		case model.EmploymentFull:
			return "Full time (a crusade)"
		case model.EmploymentPart:
			return "Part time (patrol duty)"
		case model.EmploymentRemote:
			return "Remote (astropathic relay)"
		case model.EmploymentProject:
			return "Project work (an expedition)"
		}
	}
	return b.Display()
}
