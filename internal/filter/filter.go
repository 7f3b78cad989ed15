// Package filter implements the composable vacancy predicates.
package filter

import (
	"regexp"
	"strconv"
	"strings"

	"hhradar/internal/model"
)

var digitRuns = regexp.MustCompile(`\d+`)

// Matches reports whether v satisfies every constraint set in spec.
// Each predicate is a no-op when its FilterSpec field is unset.
func Matches(v model.Vacancy, spec model.FilterSpec) bool {
	if spec.Keywords != "" && !matchesKeywords(v, spec.Keywords) {
		return false
	}
	if spec.MinSalary > 0 && !matchesSalaryFloor(v.Salary, spec.MinSalary) {
		return false
	}
	if spec.Experience != "" && v.Experience != spec.Experience {
		return false
	}
	if spec.Employment != "" && v.Employment != spec.Employment {
		return false
	}
	if spec.MinExperienceYears > 0 && v.Experience.Years() < spec.MinExperienceYears {
		return false
	}
	return true
}

// matchesKeywords looks for the keywords as a case-insensitive substring of
// title, company, description or skills; one hit is enough.
func matchesKeywords(v model.Vacancy, keywords string) bool {
	needle := strings.ToLower(strings.TrimSpace(keywords))
	if needle == "" {
		return true
	}
	for _, field := range []string{v.Title, v.Company, v.Description, v.Skills} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// matchesSalaryFloor passes when the salary text's best number reaches the
// floor. Unspecified or unparseable salaries never exclude a vacancy.
func matchesSalaryFloor(salaryText string, minSalary int) bool {
	value, ok := MaxSalary(salaryText)
	if !ok {
		return true
	}
	return value >= minSalary
}

// MaxSalary extracts the largest number from a formatted salary string,
// after stripping the space/comma digit grouping. For a range like
// "100 000 - 200 000 ₽" that is the upper bound — the filter is a floor
// check, so the maximum is always the right pick. The second return is
// false when no number is present or the salary is the sentinel.
func MaxSalary(salaryText string) (int, bool) {
	if salaryText == "" || strings.Contains(salaryText, model.SalaryNotSpecified) {
		return 0, false
	}

	stripped := strings.NewReplacer(" ", "", ",", "", " ", "").Replace(salaryText)
	runs := digitRuns.FindAllString(stripped, -1)
	if len(runs) == 0 {
		return 0, false
	}

	max := 0
	for _, run := range runs {
		if n, err := strconv.Atoi(run); err == nil && n > max {
			max = n
		}
	}
	return max, true
}
